package mathexpr

// EvalPostfix evaluates a postfix token sequence produced by Convert. The
// result of evaluating a well-formed sequence is the single value left on
// the value stack.
func (ctx *Context[N]) EvalPostfix(tokens []Token[N]) (N, error) {
	var zero N
	var stack []N
	steps := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case KindNumber, KindConstant:
			stack = append(stack, tok.Value)
		case KindVariable:
			v, ok := ctx.Var(tok.Text)
			if !ok {
				return zero, &Error{Kind: ErrUndefinedVariable, Col: tok.Pos, Text: tok.Text}
			}
			stack = append(stack, v)
		case KindOperator:
			if steps++; ctx.steps > 0 && steps > ctx.steps {
				return zero, &Error{Kind: ErrResourceExhausted, Col: tok.Pos}
			}
			var err error
			stack, err = ctx.applyOp(tok, stack)
			if err != nil {
				return zero, err
			}
		case KindFunction:
			if steps++; ctx.steps > 0 && steps > ctx.steps {
				return zero, &Error{Kind: ErrResourceExhausted, Col: tok.Pos}
			}
			f := ctx.Func(tok.Text)
			if f == nil {
				return zero, &Error{Kind: ErrUndefinedFunction, Col: tok.Pos, Text: tok.Text}
			}
			if !f.CanCall(tok.Argc) {
				return zero, &Error{Kind: ErrArityMismatch, Col: tok.Pos, Text: tok.Text}
			}
			if len(stack) < tok.Argc {
				return zero, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
			}
			// The stack tail holds the arguments in source order.
			args := make([]N, tok.Argc)
			copy(args, stack[len(stack)-tok.Argc:])
			stack = stack[:len(stack)-tok.Argc]
			r, err := f.Apply(args)
			if err != nil {
				return zero, &Error{Kind: ErrDomain, Col: tok.Pos, Text: tok.Text, Err: err}
			}
			stack = append(stack, r)
		default:
			return zero, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
		}
	}
	if len(stack) != 1 {
		return zero, &Error{Kind: ErrMalformedExpression}
	}
	return stack[0], nil
}

// applyOp dispatches an operator token against the registry and reduces the
// value stack.
func (ctx *Context[N]) applyOp(tok Token[N], stack []N) ([]N, error) {
	switch tok.Fixity {
	case FixityBinary:
		b := ctx.Binary(tok.Text)
		if b == nil {
			return nil, &Error{Kind: ErrUnknownOperator, Col: tok.Pos, Text: tok.Text}
		}
		if len(stack) < 2 {
			return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
		}
		y := stack[len(stack)-1]
		x := stack[len(stack)-2]
		r, err := b.Apply(x, y)
		if err != nil {
			return nil, &Error{Kind: ErrDomain, Col: tok.Pos, Text: tok.Text, Err: err}
		}
		return append(stack[:len(stack)-2], r), nil
	case FixityUnary:
		u := ctx.Unary(tok.Text)
		if u == nil {
			return nil, &Error{Kind: ErrUnknownOperator, Col: tok.Pos, Text: tok.Text}
		}
		if len(stack) < 1 {
			return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
		}
		x := stack[len(stack)-1]
		r, err := u.Apply(x)
		if err != nil {
			return nil, &Error{Kind: ErrDomain, Col: tok.Pos, Text: tok.Text, Err: err}
		}
		return append(stack[:len(stack)-1], r), nil
	default:
		return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
	}
}
