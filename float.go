package mathexpr

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
)

// Float is the IEEE-754 64-bit backend.
type Float struct{}

var _ Backend[float64] = Float{}

func (Float) Name() string      { return "float" }
func (Float) Literals() Literal { return LitDecimal | LitScientific }

func (Float) Parse(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

func (Float) Add(x, y float64) (float64, error) { return x + y, nil }
func (Float) Sub(x, y float64) (float64, error) { return x - y, nil }
func (Float) Mul(x, y float64) (float64, error) { return x * y, nil }

func (Float) Div(x, y float64) (float64, error) {
	if y == 0 {
		return 0, errors.New("division by zero")
	}
	return x / y, nil
}

func (Float) Neg(x float64) (float64, error) { return -x, nil }

func (Float) Cmp(x, y float64) (int, error) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, errors.New("comparison with NaN")
	}
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

func (Float) Zero() float64 { return 0 }
func (Float) One() float64  { return 1 }

func (Float) Format(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// NewFloatContext creates the default context over the float backend: the
// arithmetic operators, % and ^, postfix !, the aggregate functions, the
// usual transcendentals, and the constants pi and e.
func NewFloatContext(opts ...ContextOption[float64]) *Context[float64] {
	ctx := NewContext[float64](Float{})
	registerCommon(ctx)
	ctx.RegisterBinary(&BinaryOp[float64]{Symbol: "%", Precedence: 2, Assoc: AssocLeft, Apply: floatMod})
	ctx.RegisterBinary(&BinaryOp[float64]{Symbol: "^", Precedence: 4, Assoc: AssocRight, Apply: floatPow})
	ctx.RegisterUnary(&UnaryOp[float64]{Symbol: "!", Precedence: 5, Notation: Postfix, Apply: floatFactorial})
	ctx.SetConst("pi", math.Pi)
	ctx.SetConst("e", math.E)
	for name, f := range floatFuncs {
		ctx.RegisterFunc(Monadic(name, checked1(f)))
	}
	registerRand(ctx, rand.New(rand.NewSource(rand.Int63())))
	for _, opt := range opts {
		opt.apply(ctx)
	}
	return ctx
}

// EvalFloat evaluates an expression with a fresh default float context.
func EvalFloat(src string, opts ...ContextOption[float64]) (float64, error) {
	return New(NewFloatContext(opts...)).Eval(src)
}

var floatFuncs = map[string]func(float64) float64{
	"abs":   math.Abs,
	"sqrt":  math.Sqrt,
	"ln":    math.Log,
	"log":   math.Log10,
	"exp":   math.Exp,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"trunc": math.Trunc,
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	},
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
}

// checked1 wraps a math function so that a non-finite result from a finite
// argument becomes a domain error instead of propagating silently.
func checked1(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		r := f(x)
		if (math.IsNaN(r) || math.IsInf(r, 0)) && !math.IsNaN(x) && !math.IsInf(x, 0) {
			return 0, errors.New("argument outside domain")
		}
		return r, nil
	}
}

func floatMod(x, y float64) (float64, error) {
	if y == 0 {
		return 0, errors.New("division by zero")
	}
	return math.Mod(x, y), nil
}

func floatPow(x, y float64) (float64, error) {
	r := math.Pow(x, y)
	if math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y) {
		return 0, errors.New("result is not a number")
	}
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return 0, errors.New("overflow")
	}
	return r, nil
}

// floatFactorial extends the factorial to the reals through the gamma
// function, so 5! is 120 and 0.5! is gamma(1.5).
func floatFactorial(x float64) (float64, error) {
	r := math.Gamma(x + 1)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, errors.New("argument outside domain")
	}
	return r, nil
}

type randopt struct {
	r *rand.Rand
}

func (o randopt) apply(ctx *Context[float64]) { registerRand(ctx, o.r) }

// WithRandom seeds the rand function with a caller-supplied generator, for
// deterministic evaluation of expressions that use it.
func WithRandom(r *rand.Rand) ContextOption[float64] {
	return randopt{r}
}

// registerRand registers rand(), rand(max), and rand(min, max) over the
// given generator.
func registerRand(ctx *Context[float64], r *rand.Rand) {
	ctx.RegisterFunc(&Func[float64]{Name: "rand", MinArgs: 0, MaxArgs: 2, Apply: func(args []float64) (float64, error) {
		switch len(args) {
		case 0:
			return r.Float64(), nil
		case 1:
			return r.Float64() * args[0], nil
		default:
			if args[1] < args[0] {
				return 0, errors.New("empty range")
			}
			return args[0] + r.Float64()*(args[1]-args[0]), nil
		}
	}})
}
