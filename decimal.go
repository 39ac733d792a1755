package mathexpr

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Dec is the fixed-precision decimal backend, recommended for contexts where
// base-10 exactness matters, e.g. money-adjacent arithmetic.
type Dec struct{}

var _ Backend[decimal.Decimal] = Dec{}

func (Dec) Name() string      { return "decimal" }
func (Dec) Literals() Literal { return LitDecimal | LitScientific }

func (Dec) Parse(lit string) (decimal.Decimal, error) {
	return decimal.NewFromString(lit)
}

func (Dec) Add(x, y decimal.Decimal) (decimal.Decimal, error) { return x.Add(y), nil }
func (Dec) Sub(x, y decimal.Decimal) (decimal.Decimal, error) { return x.Sub(y), nil }
func (Dec) Mul(x, y decimal.Decimal) (decimal.Decimal, error) { return x.Mul(y), nil }

func (Dec) Div(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, errors.New("division by zero")
	}
	return x.Div(y), nil
}

func (Dec) Neg(x decimal.Decimal) (decimal.Decimal, error) { return x.Neg(), nil }

func (Dec) Cmp(x, y decimal.Decimal) (int, error) { return x.Cmp(y), nil }

func (Dec) Zero() decimal.Decimal { return decimal.Zero }
func (Dec) One() decimal.Decimal  { return decimal.NewFromInt(1) }

func (Dec) Format(x decimal.Decimal) string { return x.String() }

// NewDecimalContext creates the default context over the decimal backend.
// Transcendental functions are computed in float and converted back, losing
// precision beyond float64; this is a known limitation, not exactness the
// backend claims.
func NewDecimalContext(opts ...ContextOption[decimal.Decimal]) *Context[decimal.Decimal] {
	ctx := NewContext[decimal.Decimal](Dec{})
	registerCommon(ctx)
	ctx.RegisterBinary(&BinaryOp[decimal.Decimal]{Symbol: "%", Precedence: 2, Assoc: AssocLeft, Apply: decMod})
	ctx.RegisterBinary(&BinaryOp[decimal.Decimal]{Symbol: "^", Precedence: 4, Assoc: AssocRight, Apply: decPow})
	ctx.SetConst("pi", decimal.NewFromFloat(math.Pi))
	ctx.SetConst("e", decimal.NewFromFloat(math.E))
	ctx.RegisterFunc(Monadic("abs", func(x decimal.Decimal) (decimal.Decimal, error) {
		return x.Abs(), nil
	}))
	ctx.RegisterFunc(Monadic("floor", func(x decimal.Decimal) (decimal.Decimal, error) {
		return x.Floor(), nil
	}))
	ctx.RegisterFunc(Monadic("ceil", func(x decimal.Decimal) (decimal.Decimal, error) {
		return x.Ceil(), nil
	}))
	ctx.RegisterFunc(Monadic("round", func(x decimal.Decimal) (decimal.Decimal, error) {
		return x.Round(0), nil
	}))
	ctx.RegisterFunc(Monadic("trunc", func(x decimal.Decimal) (decimal.Decimal, error) {
		return x.Truncate(0), nil
	}))
	ctx.RegisterFunc(Monadic("sign", func(x decimal.Decimal) (decimal.Decimal, error) {
		return decimal.NewFromInt(int64(x.Sign())), nil
	}))
	for name, f := range floatFuncs {
		switch name {
		case "abs", "floor", "ceil", "round", "trunc", "sign":
			// Exact decimal implementations above.
		default:
			ctx.RegisterFunc(Monadic(name, decThroughFloat(f)))
		}
	}
	for _, opt := range opts {
		opt.apply(ctx)
	}
	return ctx
}

// EvalDecimal evaluates an expression with a fresh default decimal context.
func EvalDecimal(src string, opts ...ContextOption[decimal.Decimal]) (decimal.Decimal, error) {
	return New(NewDecimalContext(opts...)).Eval(src)
}

func decMod(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, errors.New("division by zero")
	}
	return x.Mod(y), nil
}

func decPow(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsInteger() {
		if x.IsZero() && y.Sign() < 0 {
			return decimal.Zero, errors.New("division by zero")
		}
		return x.Pow(y), nil
	}
	// A fractional exponent drops to float.
	r, err := floatPow(x.InexactFloat64(), y.InexactFloat64())
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(r), nil
}

// decThroughFloat adapts a float function to decimals through a float64
// round trip.
func decThroughFloat(f func(float64) float64) func(decimal.Decimal) (decimal.Decimal, error) {
	g := checked1(f)
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		r, err := g(x.InexactFloat64())
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromFloat(r), nil
	}
}
