// Package mathexpr implements a generic math-expression evaluator over
// pluggable numeric backends.
//
// An expression passes through three stages: a tokenizer turns the source
// text into an infix token sequence, a shunting-yard converter reorders it
// into postfix, and a stack evaluator reduces the postfix stream to a single
// value. All three stages consult a Context, which bundles the operator and
// function registries, the constants, and the per-evaluation variables.
//
//	r, err := mathexpr.EvalFloat("2 + 3 * 5")
//
// Variables let an expression be evaluated for many inputs:
//
//	ev := mathexpr.New(mathexpr.NewFloatContext())
//	ev.Context().SetVar("x", 10)
//	r, err := ev.Eval("(x - 3) ^ 2")
//
// Backends are provided for float64, arbitrary-precision integers, fixed
// precision decimals, complex128, and arbitrary-precision floats. Custom
// operators and functions may be registered on any context.
package mathexpr
