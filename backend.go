package mathexpr

// Literal is a set of numeric literal syntaxes a backend accepts. The
// tokenizer consults it to decide how far a literal extends.
type Literal uint

const (
	// LitDecimal is fractions with a decimal point. Plain integer runs are
	// always accepted.
	LitDecimal Literal = 1 << iota
	// LitScientific is an e or E exponent with an optional sign.
	LitScientific
	// LitRadix is the 0x, 0b, and 0o prefixes.
	LitRadix
	// LitImaginary is a trailing i on a literal.
	LitImaginary
)

// Backend is the capability set required of a number type usable as an
// evaluation result. Arithmetic reports failures, e.g. division by zero or
// overflow, as errors; the evaluator surfaces them as domain errors.
//
// A Backend must be safe for concurrent use. All implementations in this
// package are stateless.
type Backend[N any] interface {
	// Name identifies the backend, e.g. "float".
	Name() string
	// Literals reports which literal syntaxes Parse accepts.
	Literals() Literal
	// Parse converts a literal lexeme to a value.
	Parse(lit string) (N, error)

	Add(x, y N) (N, error)
	Sub(x, y N) (N, error)
	Mul(x, y N) (N, error)
	Div(x, y N) (N, error)
	// Neg returns -x.
	Neg(x N) (N, error)
	// Cmp compares x and y, returning a negative, zero, or positive result.
	// Backends without a total order return an error.
	Cmp(x, y N) (int, error)

	// Zero and One are the additive and multiplicative identities.
	Zero() N
	One() N
	// Format renders a value for display.
	Format(x N) string
}
