package filter

import (
	"context"

	"github.com/s0up4200/steam-dilemma/steam"
)

// defaultCompiler is shared by Compile
var defaultCompiler = NewExprCompiler(WithCache(64))

// Compile compiles expression with a shared caching compiler
func Compile(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the games matching f in their original order
func Apply(ctx context.Context, f Filter, games []steam.Game) ([]steam.Game, error) {
	matches := make([]steam.Game, 0, len(games))
	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.Evaluate(game) {
			matches = append(matches, game)
		}
	}
	return matches, nil
}
