package filter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/steam-dilemma/steam"
)

func testGames() []steam.Game {
	return []steam.Game{
		{AppID: 570, Name: "Dota 2", Playtime: 1234 * time.Minute, IconHash: "abc"},
		{AppID: 440, Name: "Team Fortress 2", Playtime: 0},
		{AppID: 620, Name: "Portal 2", Playtime: 90 * time.Minute, IconHash: "def"},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `contains(Name, "portal")`},
		{name: "comparison", expression: `PlaytimeMinutes > 60 and HasIcon`},
		{name: "helper without args", expression: `not played()`},
		{name: "empty expression", expression: "   ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `contains(Name, "unclosed`, wantErr: true},
		{name: "unknown identifier", expression: `Rating > 5`, wantErr: true},
		{name: "non boolean result", expression: `AppID + 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewExprCompiler().Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.expression), f.Expression())
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expression string
		expected   []uint64
	}{
		{`AppID == 570`, []uint64{570}},
		{`contains(Name, "2")`, []uint64{570, 440, 620}},
		{`startsWith(Name, "team")`, []uint64{440}},
		{`endsWith(Name, "PORTAL 2")`, []uint64{620}},
		{`played()`, []uint64{570, 620}},
		{`not played()`, []uint64{440}},
		{`playedMoreThan(1.5)`, []uint64{570}},
		{`PlaytimeHours >= 1.5`, []uint64{570, 620}},
		{`HasIcon and PlaytimeMinutes < 100`, []uint64{620}},
		{`lower(Name) == "dota 2" or upper(Name) == "PORTAL 2"`, []uint64{570, 620}},
		{`Name in ["Dota 2", "Portal 2"]`, []uint64{570, 620}},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			matches, err := Apply(context.Background(), f, testGames())
			require.NoError(t, err)

			got := make([]uint64, 0, len(matches))
			for _, g := range matches {
				got = append(got, g.AppID)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCustomFunctions(t *testing.T) {
	favorites := map[int]bool{620: true}
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"favorite": func(appID int) bool { return favorites[appID] },
	}))

	f, err := compiler.Compile(`favorite(AppID)`)
	require.NoError(t, err)

	matches, err := Apply(context.Background(), f, testGames())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Portal 2", matches[0].Name)
}

func TestApply_ContextCancelled(t *testing.T) {
	f, err := Compile(`played()`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Apply(ctx, f, testGames())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply_Empty(t *testing.T) {
	f, err := Compile(`played()`)
	require.NoError(t, err)

	matches, err := Apply(context.Background(), f, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`played()`)
	require.NoError(t, err)
	second, err := compiler.Compile(`  played()  `)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`HasIcon`)
	require.NoError(t, err)
	_, err = compiler.Compile(`AppID > 1`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	// played() was evicted as least recently used
	third, err := compiler.Compile(`played()`)
	require.NoError(t, err)
	assert.NotSame(t, first, third)

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestCompilerWithoutCache(t *testing.T) {
	compiler := NewExprCompiler()
	_, err := compiler.Compile(`played()`)
	require.NoError(t, err)
	assert.Equal(t, 0, compiler.Size())
	compiler.Clear()
}
