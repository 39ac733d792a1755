package mathexpr

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision of big-float contexts that don't choose one.
const DefaultPrec = 128

// BigFloat is the arbitrary-precision binary floating-point backend. Prec is
// the mantissa precision in bits; zero means DefaultPrec.
type BigFloat struct {
	Prec uint
}

var _ Backend[*big.Float] = BigFloat{}

func (b BigFloat) prec() uint {
	if b.Prec == 0 {
		return DefaultPrec
	}
	return b.Prec
}

func (BigFloat) Name() string      { return "bigfloat" }
func (BigFloat) Literals() Literal { return LitDecimal | LitScientific }

func (b BigFloat) Parse(lit string) (*big.Float, error) {
	f, _, err := big.ParseFloat(lit, 10, b.prec(), big.ToNearestEven)
	return f, err
}

func (b BigFloat) new() *big.Float {
	return new(big.Float).SetPrec(b.prec())
}

func (b BigFloat) Add(x, y *big.Float) (*big.Float, error) { return b.new().Add(x, y), nil }
func (b BigFloat) Sub(x, y *big.Float) (*big.Float, error) { return b.new().Sub(x, y), nil }
func (b BigFloat) Mul(x, y *big.Float) (*big.Float, error) { return b.new().Mul(x, y), nil }

func (b BigFloat) Div(x, y *big.Float) (*big.Float, error) {
	if y.Sign() == 0 {
		return nil, errors.New("division by zero")
	}
	return b.new().Quo(x, y), nil
}

func (b BigFloat) Neg(x *big.Float) (*big.Float, error) { return b.new().Neg(x), nil }

func (BigFloat) Cmp(x, y *big.Float) (int, error) { return x.Cmp(y), nil }

func (b BigFloat) Zero() *big.Float { return b.new() }
func (b BigFloat) One() *big.Float  { return b.new().SetInt64(1) }

func (BigFloat) Format(x *big.Float) string { return x.Text('g', -1) }

// NewBigFloatContext creates the default context over the big-float backend
// at the given precision in bits. Zero selects DefaultPrec.
func NewBigFloatContext(prec uint, opts ...ContextOption[*big.Float]) *Context[*big.Float] {
	b := BigFloat{Prec: prec}
	ctx := NewContext[*big.Float](b)
	registerCommon(ctx)
	ctx.RegisterBinary(&BinaryOp[*big.Float]{Symbol: "^", Precedence: 4, Assoc: AssocRight, Apply: b.pow})
	ctx.SetConst("pi", bigfloat.Pi(b.new()))
	one := b.One()
	ctx.SetConst("e", bigfloat.Exp(b.new(), one))
	ctx.RegisterFunc(Monadic("sqrt", func(x *big.Float) (*big.Float, error) {
		if x.Signbit() {
			return nil, errors.New("square root of negative number")
		}
		return b.new().Sqrt(x), nil
	}))
	ctx.RegisterFunc(Monadic("exp", func(x *big.Float) (*big.Float, error) {
		return bigfloat.Exp(b.new(), x), nil
	}))
	ctx.RegisterFunc(Monadic("ln", func(x *big.Float) (*big.Float, error) {
		if x.Sign() <= 0 {
			return nil, errors.New("logarithm of non-positive number")
		}
		return bigfloat.Log(b.new(), x), nil
	}))
	ctx.RegisterFunc(Monadic("log", func(x *big.Float) (*big.Float, error) {
		if x.Sign() <= 0 {
			return nil, errors.New("logarithm of non-positive number")
		}
		r := bigfloat.Log(b.new(), x)
		ten := bigfloat.Log(b.new(), b.new().SetInt64(10))
		return r.Quo(r, ten), nil
	}))
	ctx.RegisterFunc(Monadic("abs", func(x *big.Float) (*big.Float, error) {
		return b.new().Abs(x), nil
	}))
	for _, opt := range opts {
		opt.apply(ctx)
	}
	return ctx
}

// EvalBigFloat evaluates an expression with a fresh default big-float
// context at the given precision.
func EvalBigFloat(src string, prec uint, opts ...ContextOption[*big.Float]) (*big.Float, error) {
	return New(NewBigFloatContext(prec, opts...)).Eval(src)
}

// pow computes x^y. Negative bases are outside the domain, as the general
// power goes through exp and log.
func (b BigFloat) pow(x, y *big.Float) (*big.Float, error) {
	if x.Signbit() {
		return nil, errors.New("negative base")
	}
	if x.Sign() == 0 && y.Sign() < 0 {
		return nil, errors.New("division by zero")
	}
	return bigfloat.Pow(b.new(), x, y), nil
}
