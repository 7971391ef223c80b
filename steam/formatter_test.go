package steam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPlaytime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "never"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{1234 * time.Minute, "20h 34m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPlaytime(tt.in))
		})
	}
}

func TestConsoleFormatter_FormatGameList(t *testing.T) {
	f := NewConsoleFormatter()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No games found", f.FormatGameList(nil, FormatOptions{}))
	})

	games := []Game{
		{AppID: 570, Name: "Dota 2", Playtime: 1234 * time.Minute, IconHash: "abc"},
		{AppID: 440, Name: ""},
	}

	t.Run("compact", func(t *testing.T) {
		want := "\nGames (2):\n\n" +
			"├── Dota 2 (570)\n" +
			"│   Played: 20h 34m\n" +
			"│\n" +
			"╰── Unknown (440)\n" +
			"    Played: never\n" +
			"\n"
		assert.Equal(t, want, f.FormatGameList(games, FormatOptions{}))
	})

	t.Run("details", func(t *testing.T) {
		out := f.FormatGameList(games[:1], FormatOptions{ShowDetails: true})
		assert.Contains(t, out, "\nGame (1):\n\n")
		assert.Contains(t, out, "    Store: https://store.steampowered.com/app/570\n")
		assert.Contains(t, out, "    Icon: https://media.steampowered.com/steamcommunity/public/images/apps/570/abc.jpg\n")
	})
}
