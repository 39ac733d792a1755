package mathexpr_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exprlang/mathexpr"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestEvalFloat(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]float64
		want float64
	}{
		{"precedence", "2 + 3 * 5", nil, 17},
		{"grouping", "(2 + 3) * 5", nil, 25},
		{"right-assoc", "2 ^ 3 ^ 2", nil, 512},
		{"unary-pow", "-2 ^ 2", nil, -4},
		{"variadic", "sum(1, 2, 3, 4)", nil, 10},
		{"variables", "(x - y) ^ 2", map[string]float64{"x": 10, "y": 3.5}, 42.25},
		{"two-calls", "max(1, 2, 3) + min(4, 5)", nil, 7},
		{"single-number", "42", nil, 42},
		{"single-variable", "x", map[string]float64{"x": 7}, 7},
		{"left-assoc", "10 - 4 - 3", nil, 3},
		{"stacked-minus", "---5", nil, -5},
		{"minus-after-group", "(1)-2", nil, -1},
		{"nested-brackets", "{[(1 + 2)] * 3}", nil, 9},
		{"modulo", "10 % 3", nil, 1},
		{"factorial", "5!", nil, 120},
		{"factorial-neg", "-3!", nil, -6},
		{"avg", "avg(1, 2, 3)", nil, 2},
		{"prod", "prod(2, 3, 4)", nil, 24},
		{"constants", "cos(0) + sign(e - 2)", nil, 2},
		{"fraction", ".5 * 4", nil, 2},
		{"scientific", "1e2 + 2.5e-1", nil, 100.25},
		{"case-insensitive", "SUM(1, 2) + PI - pi", nil, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev := mathexpr.New(mathexpr.NewFloatContext())
			for k, v := range c.vars {
				ev.Context().SetVar(k, v)
			}
			got, err := ev.Eval(c.src)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind mathexpr.ErrorKind
	}{
		{"empty", "", mathexpr.ErrEmptyExpression},
		{"whitespace", " \t ", mathexpr.ErrEmptyExpression},
		{"division-by-zero", "1 / 0", mathexpr.ErrDomain},
		{"mod-by-zero", "1 % 0", mathexpr.ErrDomain},
		{"sqrt-negative", "sqrt(-1)", mathexpr.ErrDomain},
		{"undefined-variable", "x + 1", mathexpr.ErrUndefinedVariable},
		{"undefined-function", "frobnicate(1)", mathexpr.ErrUndefinedFunction},
		{"arity", "sum()", mathexpr.ErrArityMismatch},
		{"mismatched", "(1 + 2]", mathexpr.ErrMismatchedGrouping},
		{"unbalanced", "(1 + 2", mathexpr.ErrUnbalancedGrouping},
		{"trailing-operator", "1 *", mathexpr.ErrMalformedExpression},
		{"comma-outside-call", "1, 2", mathexpr.ErrMisplacedSeparator},
		{"unknown-rune", "1 @ 2", mathexpr.ErrUnexpectedCharacter},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := mathexpr.EvalFloat(c.src)
			require.Error(t, err)
			var e *mathexpr.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, c.kind, e.Kind, "error was %v", err)
		})
	}
}

// TestEvalRedundantGrouping checks that wrapping any expression in another
// bracket pair never changes its value.
func TestEvalRedundantGrouping(t *testing.T) {
	srcs := []string{
		"2 + 3 * 5",
		"-2 ^ 2",
		"sum(1, 2, 3)",
		"10 - 4 - 3",
	}
	for _, src := range srcs {
		plain, err := mathexpr.EvalFloat(src)
		require.NoError(t, err)
		for _, w := range []string{"(" + src + ")", "[" + src + "]", "{" + src + "}"} {
			wrapped, err := mathexpr.EvalFloat(w)
			require.NoError(t, err)
			assert.Equal(t, plain, wrapped, "wrapping %q as %q", src, w)
		}
	}
}

// TestEvalAssociativityChains checks chains against their explicit
// parenthesizations.
func TestEvalAssociativityChains(t *testing.T) {
	pairs := [][2]string{
		{"10 - 4 - 3", "(10 - 4) - 3"},
		{"100 / 10 / 5", "(100 / 10) / 5"},
		{"2 ^ 3 ^ 2", "2 ^ (3 ^ 2)"},
	}
	for _, p := range pairs {
		a, err := mathexpr.EvalFloat(p[0])
		require.NoError(t, err)
		b, err := mathexpr.EvalFloat(p[1])
		require.NoError(t, err)
		assert.Equal(t, b, a, "%q vs %q", p[0], p[1])
	}
}

// TestEvalSubstitution checks that a bound variable evaluates the same as
// its literal substitution.
func TestEvalSubstitution(t *testing.T) {
	ev := mathexpr.New(mathexpr.NewFloatContext())
	ev.Context().SetVar("x", 3.5)
	withVar, err := ev.Eval("2 * x ^ 2 - x")
	require.NoError(t, err)
	literal, err := mathexpr.EvalFloat("2 * 3.5 ^ 2 - 3.5")
	require.NoError(t, err)
	assert.Equal(t, literal, withVar)
}

// TestEvalPostfixRoundTrip checks that re-evaluating the converter's output
// yields the same value as the one-call path.
func TestEvalPostfixRoundTrip(t *testing.T) {
	ctx := mathexpr.NewFloatContext()
	srcs := []string{
		"2 + 3 * 5",
		"-2 ^ 2",
		"max(1, 2, 3) + min(4, 5)",
		"sum(1, 2, 3, 4) / 4",
	}
	for _, src := range srcs {
		rpn, err := ctx.Convert(ctx.Tokenize(src))
		require.NoError(t, err)
		direct, err := mathexpr.New(ctx).Eval(src)
		require.NoError(t, err)
		again, err := ctx.EvalPostfix(rpn)
		require.NoError(t, err)
		assert.Equal(t, direct, again, "round-tripping %q", src)
	}
}

func TestEvalResourceExhausted(t *testing.T) {
	ctx := mathexpr.NewFloatContext(mathexpr.MaxSteps[float64](2))
	_, err := mathexpr.New(ctx).Eval("1 + 2 + 3 + 4")
	var e *mathexpr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, mathexpr.ErrResourceExhausted, e.Kind)

	r, err := mathexpr.New(ctx).Eval("1 + 2")
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
}

func TestEvalErrorPosition(t *testing.T) {
	_, err := mathexpr.EvalFloat("1 + boo")
	var e *mathexpr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, mathexpr.ErrUndefinedVariable, e.Kind)
	assert.Equal(t, 5, e.Pos())
	assert.Equal(t, "boo", e.Text)
}

// TestEvalConcurrent shares one frozen context across parallel evaluations.
func TestEvalConcurrent(t *testing.T) {
	ctx := mathexpr.NewFloatContext(mathexpr.SetVar("x", 2.0))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r, err := mathexpr.New(ctx).Eval("x ^ 2 + sum(1, 2, 3)")
				if err != nil || r != 10 {
					t.Errorf("got %v, %v", r, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEvalCaseSensitiveContext(t *testing.T) {
	ctx := mathexpr.NewFloatContext(mathexpr.CaseSensitive[float64]())
	ctx.SetConst("Answer", 42)
	r, err := mathexpr.New(ctx).Eval("Answer")
	require.NoError(t, err)
	assert.Equal(t, 42.0, r)
	// The lowercase spelling is a different, undefined name now.
	_, err = mathexpr.New(ctx).Eval("answer")
	var e *mathexpr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, mathexpr.ErrUndefinedVariable, e.Kind)
}

func TestEvalCustomOperator(t *testing.T) {
	ctx := mathexpr.NewFloatContext()
	ctx.RegisterBinary(&mathexpr.BinaryOp[float64]{Symbol: "<=", Precedence: 0, Assoc: mathexpr.AssocLeft, Apply: func(x, y float64) (float64, error) {
		if x <= y {
			return 1, nil
		}
		return 0, nil
	}})
	r, err := mathexpr.New(ctx).Eval("1 + 1 <= 3")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
}

func TestEvalString(t *testing.T) {
	r, err := mathexpr.EvalString("2 + 2")
	require.NoError(t, err)
	assert.Equal(t, 4.0, r)
}

func TestEvaluatorContextMutation(t *testing.T) {
	ev := mathexpr.New(mathexpr.NewFloatContext())
	ev.Context().SetVar("n", 1)
	r, err := ev.Eval("n + 1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, r)
	ev.Context().SetVar("n", r)
	r, err = ev.Eval("n + 1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
}

func TestContextClone(t *testing.T) {
	base := mathexpr.NewFloatContext(mathexpr.SetVar("x", 1.0))
	clone := base.Clone(mathexpr.SetVar[float64]("x", 2.0))
	r, err := mathexpr.New(base).Eval("x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
	r, err = mathexpr.New(clone).Eval("x")
	require.NoError(t, err)
	assert.Equal(t, 2.0, r)
}

func TestContextKnown(t *testing.T) {
	ctx := mathexpr.NewFloatContext()
	assert.True(t, ctx.Known("+"))
	assert.True(t, ctx.Known("sum"))
	assert.True(t, ctx.Known("PI"))
	assert.False(t, ctx.Known("frobnicate"))
	ctx.SetVar("frobnicate", 1)
	assert.True(t, ctx.Known("frobnicate"))
}

func TestEvalRandSeeded(t *testing.T) {
	// The same seed gives the same stream.
	a, err := mathexpr.EvalFloat("rand(10)", mathexpr.WithRandom(newRand(7)))
	require.NoError(t, err)
	b, err := mathexpr.EvalFloat("rand(10)", mathexpr.WithRandom(newRand(7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Less(t, a, 10.0)
}

func TestErrorsIs(t *testing.T) {
	_, err := mathexpr.EvalFloat("1 / 0")
	assert.True(t, errors.Is(err, &mathexpr.Error{Kind: mathexpr.ErrDomain}))
	assert.False(t, errors.Is(err, &mathexpr.Error{Kind: mathexpr.ErrEmptyExpression}))
}
