package mathexpr

// Evaluator threads a context through the three passes: tokenize, convert,
// evaluate.
type Evaluator[N any] struct {
	ctx *Context[N]
}

// New constructs an evaluator from a context. Use one of the default context
// constructors, e.g. NewFloatContext, for a context with the standard
// operators and functions registered.
func New[N any](ctx *Context[N]) *Evaluator[N] {
	return &Evaluator[N]{ctx: ctx}
}

// Eval tokenizes, converts, and evaluates an expression.
func (e *Evaluator[N]) Eval(src string) (N, error) {
	var zero N
	rpn, err := e.ctx.Convert(e.ctx.Tokenize(src))
	if err != nil {
		return zero, err
	}
	return e.ctx.EvalPostfix(rpn)
}

// Context returns the evaluator's context, through which registrations and
// variables may be read or mutated between evaluations.
func (e *Evaluator[N]) Context() *Context[N] {
	return e.ctx
}

// EvalString evaluates an expression with a fresh default float context.
func EvalString(src string, opts ...ContextOption[float64]) (float64, error) {
	return New(NewFloatContext(opts...)).Eval(src)
}
