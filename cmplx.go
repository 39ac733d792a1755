package mathexpr

import (
	"errors"
	"math"
	"math/cmplx"
	"strconv"
)

// Complex is the complex128 backend. Literals may carry a trailing i, and
// the default context defines the imaginary-unit constant i.
type Complex struct{}

var _ Backend[complex128] = Complex{}

func (Complex) Name() string      { return "complex" }
func (Complex) Literals() Literal { return LitDecimal | LitScientific | LitImaginary }

func (Complex) Parse(lit string) (complex128, error) {
	return strconv.ParseComplex(lit, 128)
}

func (Complex) Add(x, y complex128) (complex128, error) { return x + y, nil }
func (Complex) Sub(x, y complex128) (complex128, error) { return x - y, nil }
func (Complex) Mul(x, y complex128) (complex128, error) { return x * y, nil }

func (Complex) Div(x, y complex128) (complex128, error) {
	if y == 0 {
		return 0, errors.New("division by zero")
	}
	return x / y, nil
}

func (Complex) Neg(x complex128) (complex128, error) { return -x, nil }

// Cmp always fails: the complex numbers have no order, so max and min are
// outside this backend's domain.
func (Complex) Cmp(x, y complex128) (int, error) {
	return 0, errors.New("complex numbers are not ordered")
}

func (Complex) Zero() complex128 { return 0 }
func (Complex) One() complex128  { return 1 }

func (Complex) Format(x complex128) string {
	return strconv.FormatComplex(x, 'g', -1, 128)
}

// NewComplexContext creates the default context over the complex backend.
func NewComplexContext(opts ...ContextOption[complex128]) *Context[complex128] {
	ctx := NewContext[complex128](Complex{})
	registerCommon(ctx)
	ctx.RegisterBinary(&BinaryOp[complex128]{Symbol: "^", Precedence: 4, Assoc: AssocRight, Apply: func(x, y complex128) (complex128, error) {
		return cmplx.Pow(x, y), nil
	}})
	ctx.SetConst("i", complex(0, 1))
	ctx.SetConst("pi", complex(math.Pi, 0))
	ctx.SetConst("e", complex(math.E, 0))
	ctx.RegisterFunc(Monadic("abs", func(x complex128) (complex128, error) {
		return complex(cmplx.Abs(x), 0), nil
	}))
	ctx.RegisterFunc(Monadic("real", func(x complex128) (complex128, error) {
		return complex(real(x), 0), nil
	}))
	ctx.RegisterFunc(Monadic("imag", func(x complex128) (complex128, error) {
		return complex(imag(x), 0), nil
	}))
	ctx.RegisterFunc(Monadic("conj", func(x complex128) (complex128, error) {
		return cmplx.Conj(x), nil
	}))
	for name, f := range complexFuncs {
		f := f
		ctx.RegisterFunc(Monadic(name, func(x complex128) (complex128, error) {
			return f(x), nil
		}))
	}
	for _, opt := range opts {
		opt.apply(ctx)
	}
	return ctx
}

// EvalComplex evaluates an expression with a fresh default complex context.
func EvalComplex(src string, opts ...ContextOption[complex128]) (complex128, error) {
	return New(NewComplexContext(opts...)).Eval(src)
}

var complexFuncs = map[string]func(complex128) complex128{
	"sqrt": cmplx.Sqrt,
	"exp":  cmplx.Exp,
	"ln":   cmplx.Log,
	"log":  cmplx.Log10,
	"sin":  cmplx.Sin,
	"cos":  cmplx.Cos,
	"tan":  cmplx.Tan,
}
