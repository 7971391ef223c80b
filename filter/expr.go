package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/steam-dilemma/steam"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression  string
	program     *vm.Program
	customFuncs map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	customFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter.
// Unknown identifiers and non-boolean results are compile errors.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// The zero game gives the checker every name and type a runtime env will have
	env := environment(steam.Game{}, c.customFuncs)
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression:  expression,
		program:     program,
		customFuncs: c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

func environment(game steam.Game, customFuncs map[string]any) map[string]any {
	env := createRuntimeEnvironment(game)
	maps.Copy(env, customFuncs)
	return env
}

// Evaluate evaluates the filter against a game.
// A runtime error counts as no match.
func (f *exprFilter) Evaluate(game steam.Game) bool {
	result, err := expr.Run(f.program, environment(game, f.customFuncs))
	if err != nil {
		return false
	}

	// AsBool() at compile time guarantees the type
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the game independent helpers
func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// createRuntimeEnvironment creates the environment a single game is evaluated in
func createRuntimeEnvironment(game steam.Game) map[string]any {
	env := make(map[string]any, 16)

	addHelperFunctions(env)

	playtime := game.Playtime
	env["played"] = func() bool {
		return playtime > 0
	}
	env["playedMoreThan"] = func(h float64) bool {
		return playtime > time.Duration(h*float64(time.Hour))
	}

	env["AppID"] = int(game.AppID)
	env["Name"] = game.Name
	env["PlaytimeMinutes"] = int(game.PlaytimeMinutes())
	env["PlaytimeHours"] = game.Playtime.Hours()
	env["HasIcon"] = game.IconHash != ""

	return env
}
