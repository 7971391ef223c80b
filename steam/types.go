package steam

import (
	"fmt"
	"strconv"
	"time"

	"github.com/s0up4200/steam-dilemma/model"
)

const iconURLFormat = "https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg"

// UserLibrary is a user's owned games
type UserLibrary struct {
	GameCount int
	Games     []Game
}

// ToModel converts every game to the shared model type
func (l *UserLibrary) ToModel() []model.Game {
	games := make([]model.Game, 0, len(l.Games))
	for _, g := range l.Games {
		games = append(games, g.ToModel())
	}
	return games
}

// Game is a single owned title
type Game struct {
	AppID    uint64
	Name     string
	Playtime time.Duration
	IconHash string
}

// Equal reports whether both values describe the same title.
// Only the app ID is compared.
func (g Game) Equal(other Game) bool {
	return g.AppID == other.AppID
}

// String implements fmt.Stringer
func (g Game) String() string {
	return fmt.Sprintf("Game: id %d, name: %s, total time played: %s", g.AppID, g.Name, g.Playtime)
}

// PlaytimeMinutes returns the playtime as Steam reports it
func (g Game) PlaytimeMinutes() uint64 {
	return uint64(g.Playtime / time.Minute)
}

// IconURL returns the CDN URL of the game icon, or "" when Steam sent no icon
func (g Game) IconURL() string {
	if g.IconHash == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, g.AppID, g.IconHash)
}

// StorePageURL returns the store page for the game
func (g Game) StorePageURL() string {
	return "https://store.steampowered.com/app/" + strconv.FormatUint(g.AppID, 10)
}

// ToModel converts to the shared model type.
// The shared type has no playtime or icon; ID stays 0 since only AppID is meaningful.
func (g Game) ToModel() model.Game {
	return model.Game{
		ID:    0,
		AppID: g.AppID,
		Name:  g.Name,
	}
}
