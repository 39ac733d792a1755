package mathexpr

import (
	"errors"
	"math/big"
)

// Int is the arbitrary-precision signed integer backend. Division truncates
// toward zero.
type Int struct{}

var _ Backend[*big.Int] = Int{}

func (Int) Name() string      { return "int" }
func (Int) Literals() Literal { return LitRadix }

func (Int) Parse(lit string) (*big.Int, error) {
	// Base 0 reads the 0x, 0b, and 0o prefixes but would also take a bare
	// leading zero as octal; plain digit runs are decimal.
	base := 0
	if len(lit) > 1 && lit[0] == '0' && isDigit(rune(lit[1])) {
		base = 10
	}
	z, ok := new(big.Int).SetString(lit, base)
	if !ok {
		return nil, errors.New("invalid integer literal " + lit)
	}
	return z, nil
}

func (Int) Add(x, y *big.Int) (*big.Int, error) { return new(big.Int).Add(x, y), nil }
func (Int) Sub(x, y *big.Int) (*big.Int, error) { return new(big.Int).Sub(x, y), nil }
func (Int) Mul(x, y *big.Int) (*big.Int, error) { return new(big.Int).Mul(x, y), nil }

func (Int) Div(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, errors.New("division by zero")
	}
	return new(big.Int).Quo(x, y), nil
}

func (Int) Neg(x *big.Int) (*big.Int, error) { return new(big.Int).Neg(x), nil }

func (Int) Cmp(x, y *big.Int) (int, error) { return x.Cmp(y), nil }

func (Int) Zero() *big.Int { return new(big.Int) }
func (Int) One() *big.Int  { return big.NewInt(1) }

func (Int) Format(x *big.Int) string { return x.String() }

// intExpMax bounds the exponent of ^ so a single expression cannot allocate
// unbounded memory.
const intExpMax = 1 << 20

// NewIntContext creates the default context over the integer backend.
// Division truncates; ^ requires a non-negative exponent.
func NewIntContext(opts ...ContextOption[*big.Int]) *Context[*big.Int] {
	ctx := NewContext[*big.Int](Int{})
	registerCommon(ctx)
	ctx.RegisterBinary(&BinaryOp[*big.Int]{Symbol: "%", Precedence: 2, Assoc: AssocLeft, Apply: intMod})
	ctx.RegisterBinary(&BinaryOp[*big.Int]{Symbol: "^", Precedence: 4, Assoc: AssocRight, Apply: intPow})
	ctx.RegisterUnary(&UnaryOp[*big.Int]{Symbol: "!", Precedence: 5, Notation: Postfix, Apply: intFactorial})
	ctx.RegisterFunc(Monadic("abs", func(x *big.Int) (*big.Int, error) {
		return new(big.Int).Abs(x), nil
	}))
	ctx.RegisterFunc(Monadic("sign", func(x *big.Int) (*big.Int, error) {
		return big.NewInt(int64(x.Sign())), nil
	}))
	for _, opt := range opts {
		opt.apply(ctx)
	}
	return ctx
}

// EvalInt evaluates an expression with a fresh default integer context.
func EvalInt(src string, opts ...ContextOption[*big.Int]) (*big.Int, error) {
	return New(NewIntContext(opts...)).Eval(src)
}

func intMod(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, errors.New("division by zero")
	}
	return new(big.Int).Rem(x, y), nil
}

func intPow(x, y *big.Int) (*big.Int, error) {
	if y.Sign() < 0 {
		return nil, errors.New("negative exponent")
	}
	if !y.IsInt64() || y.Int64() > intExpMax {
		return nil, errors.New("exponent too large")
	}
	return new(big.Int).Exp(x, y, nil), nil
}

func intFactorial(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 {
		return nil, errors.New("factorial of negative integer")
	}
	if !x.IsInt64() || x.Int64() > intExpMax {
		return nil, errors.New("argument too large")
	}
	return new(big.Int).MulRange(1, x.Int64()), nil
}
