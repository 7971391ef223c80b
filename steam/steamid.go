package steam

import (
	"strconv"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

// Accepted identifier forms:
//
//	SteamID                        STEAM_0:0:11101
//	SteamID3                       [U:1:22202]
//	SteamID3 without brackets      U:1:22202
//	SteamID64                      76561197960287930
//	custom URL                     gabelogannewell
//	profile URL                    https://steamcommunity.com/profiles/76561197960287930
//	profile URL with custom URL    https://steamcommunity.com/id/gabelogannewell
var profilePrefixes = []string{
	"steamcommunity.com/profiles/",
	"steamcommunity.com/id/",
}

// NormalizeID converts any accepted identifier form into a SteamID64 string.
// Custom URLs and unparseable input are returned trimmed but otherwise unchanged.
func NormalizeID(input string) string {
	id := stripProfileURL(strings.TrimSpace(input))
	if sid, ok := parseSteamID(id); ok {
		return strconv.FormatInt(sid.Int64(), 10)
	}
	return id
}

// ParseID returns the 64-bit form of input when it is a numeric Steam identifier
func ParseID(input string) (uint64, bool) {
	sid, ok := parseSteamID(stripProfileURL(strings.TrimSpace(input)))
	if !ok {
		return 0, false
	}
	return uint64(sid.Int64()), true
}

func parseSteamID(id string) (steamid.SteamID, bool) {
	if id == "" {
		return steamid.SteamID{}, false
	}
	if strings.HasPrefix(id, "U:") {
		id = "[" + id + "]"
	}
	sid := steamid.New(id)
	return sid, sid.Valid()
}

func stripProfileURL(id string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(id, "https://"), "http://")
	trimmed = strings.TrimPrefix(trimmed, "www.")
	for _, prefix := range profilePrefixes {
		if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
			rest = strings.TrimRight(rest, "/")
			if i := strings.IndexAny(rest, "/?#"); i >= 0 {
				rest = rest[:i]
			}
			return rest
		}
	}
	return id
}
