package steam

import (
	"context"
	"encoding/json"
	"math"
	"time"
)

// OwnedGamesPath is the IPlayerService/GetOwnedGames (v1) resource
const OwnedGamesPath = "/IPlayerService/GetOwnedGames/v1"

// ownedGamesResponse is the outer wire shape. Steam omits "response" for
// private or empty profiles.
type ownedGamesResponse struct {
	Response *ownedGamesPayload `json:"response"`
}

type ownedGamesPayload struct {
	GameCount int         `json:"game_count"`
	Games     []ownedGame `json:"games"`
}

type ownedGame struct {
	AppID           uint64 `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever uint64 `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
}

// GetUserLibrary retrieves the games owned by steamID
func (c *Client) GetUserLibrary(ctx context.Context, steamID string) (*UserLibrary, error) {
	id := NormalizeID(steamID)

	raw, err := c.GetRequest(ctx, c.endpoint(OwnedGamesPath), []QueryParam{
		{Name: "steamid", Value: id},
		{Name: "include_appinfo", Value: "1"},
		{Name: "include_played_free_games", Value: "1"},
	})
	if err != nil {
		return nil, err
	}

	wire, err := decodeOwnedGames(raw)
	if err != nil {
		return nil, err
	}

	library, err := wire.toUserLibrary()
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("steam_id", id).
		Int("game_count", library.GameCount).
		Msg("Retrieved library from Steam")

	return library, nil
}

// decodeOwnedGames parses raw JSON into the wire shape
func decodeOwnedGames(raw json.RawMessage) (*ownedGamesResponse, error) {
	var wire ownedGamesResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &APIError{Kind: KindUnexpectedSchema, Message: msgUnexpectedSchema, Err: err}
	}
	return &wire, nil
}

// toUserLibrary converts the wire shape into the domain type
func (r *ownedGamesResponse) toUserLibrary() (*UserLibrary, error) {
	if r.Response == nil || (r.Response.GameCount == 0 && len(r.Response.Games) == 0) {
		return nil, &APIError{Kind: KindEmptyOrPrivate, Message: msgEmptyOrPrivate}
	}

	library := &UserLibrary{
		GameCount: r.Response.GameCount,
		Games:     make([]Game, 0, len(r.Response.Games)),
	}
	for _, g := range r.Response.Games {
		library.Games = append(library.Games, Game{
			AppID:    g.AppID,
			Name:     g.Name,
			Playtime: playtime(g.PlaytimeForever),
			IconHash: g.ImgIconURL,
		})
	}

	return library, nil
}

// maxPlaytimeMinutes is the largest minute count a time.Duration can hold
const maxPlaytimeMinutes = math.MaxInt64 / int64(time.Minute)

// playtime converts Steam's minute count, saturating instead of overflowing
func playtime(minutes uint64) time.Duration {
	if minutes > uint64(maxPlaytimeMinutes) {
		minutes = uint64(maxPlaytimeMinutes)
	}
	return time.Duration(minutes) * time.Minute
}
