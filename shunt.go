package mathexpr

// opItem is an entry on the converter's operator stack: an operator with its
// resolved precedence, a function with its running argument count, or an open
// bracket.
type opItem[N any] struct {
	tok Token[N]
	// prec and right describe an operator entry.
	prec  int
	right bool
	// argc is the running argument count of a function entry.
	argc int
	// call marks an open bracket that delimits a function's argument list.
	call bool
}

// Convert reorders an infix token sequence into postfix using the
// shunting-yard algorithm. Operator fixity is resolved from the token's
// position, bracket kinds are matched, and every function token in the
// output is annotated with the number of arguments it received.
func (ctx *Context[N]) Convert(tokens []Token[N]) ([]Token[N], error) {
	if len(tokens) == 0 {
		return nil, &Error{Kind: ErrEmptyExpression, Col: 1}
	}
	out := make([]Token[N], 0, len(tokens))
	var stack []opItem[N]
	// operand tracks the recognizer state: true when the next token must
	// begin an operand, false when an operator or close bracket may follow.
	operand := true
	for i, tok := range tokens {
		switch tok.Kind {
		case KindNumber, KindVariable, KindConstant:
			if !operand {
				return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
			}
			out = append(out, tok)
			operand = false
		case KindFunction:
			if !operand {
				return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
			}
			if i+1 >= len(tokens) || tokens[i+1].Kind != KindGroupingOpen {
				return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
			}
			stack = append(stack, opItem[N]{tok: tok})
		case KindOperator:
			item, emit, err := ctx.resolveOp(tok, operand)
			if err != nil {
				return nil, err
			}
			if emit {
				// A postfix operator applies to the operand already in the
				// output.
				out = append(out, item.tok)
				continue
			}
			if item.tok.Fixity == FixityBinary {
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.tok.Kind != KindOperator {
						break
					}
					if top.prec > item.prec || (top.prec == item.prec && !item.right) {
						out = append(out, top.tok)
						stack = stack[:len(stack)-1]
						continue
					}
					break
				}
				operand = true
			}
			// Prefix operators await their operand and pop nothing.
			stack = append(stack, item)
		case KindGroupingOpen:
			if !operand {
				return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
			}
			call := i > 0 && tokens[i-1].Kind == KindFunction
			if call {
				// The function is on top of the stack. Its argument count
				// starts at 1 unless the call is empty.
				if i+1 < len(tokens) && tokens[i+1].Kind == KindGroupingClose && tokens[i+1].Bracket == tok.Bracket {
					stack[len(stack)-1].argc = 0
				} else {
					stack[len(stack)-1].argc = 1
				}
			}
			stack = append(stack, opItem[N]{tok: tok, call: call})
		case KindGroupingClose:
			if operand {
				// Only a niladic call may close while an operand is
				// expected.
				if i == 0 || tokens[i-1].Kind != KindGroupingOpen {
					return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
				}
				if len(stack) == 0 || !stack[len(stack)-1].call {
					return nil, &Error{Kind: ErrEmptyExpression, Col: tok.Pos, Text: tok.Text}
				}
			}
			if err := ctx.closeGroup(tok, &out, &stack); err != nil {
				return nil, err
			}
			operand = false
		case KindSeparator:
			if operand {
				return nil, &Error{Kind: ErrMisplacedSeparator, Col: tok.Pos, Text: tok.Text}
			}
			for len(stack) > 0 && stack[len(stack)-1].tok.Kind != KindGroupingOpen {
				out = append(out, stack[len(stack)-1].tok)
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 || !stack[len(stack)-1].call {
				return nil, &Error{Kind: ErrMisplacedSeparator, Col: tok.Pos, Text: tok.Text}
			}
			// The function entry sits directly below its open bracket.
			stack[len(stack)-2].argc++
			operand = true
		case KindUnknown:
			return nil, &Error{Kind: ErrUnexpectedCharacter, Col: tok.Pos, Text: tok.Text}
		default:
			return nil, &Error{Kind: ErrMalformedExpression, Col: tok.Pos, Text: tok.Text}
		}
	}
	if operand {
		last := tokens[len(tokens)-1]
		return nil, &Error{Kind: ErrMalformedExpression, Col: last.Pos, Text: last.Text}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.tok.Kind == KindGroupingOpen {
			return nil, &Error{Kind: ErrUnbalancedGrouping, Col: top.tok.Pos, Text: top.tok.Text}
		}
		out = append(out, top.tok)
	}
	return out, nil
}

// resolveOp assigns fixity to an operator token from its position in the
// stream. In operand position only a prefix descriptor fits; otherwise a
// binary descriptor is preferred and a postfix descriptor accepted. emit is
// true when the operator goes straight to the output.
func (ctx *Context[N]) resolveOp(tok Token[N], operand bool) (item opItem[N], emit bool, err error) {
	if operand {
		u := ctx.Unary(tok.Text)
		if u == nil || u.Notation != Prefix {
			return item, false, &Error{Kind: ErrUnknownOperator, Col: tok.Pos, Text: tok.Text}
		}
		tok.Fixity = FixityUnary
		return opItem[N]{tok: tok, prec: u.Precedence, right: true}, false, nil
	}
	if b := ctx.Binary(tok.Text); b != nil {
		tok.Fixity = FixityBinary
		return opItem[N]{tok: tok, prec: b.Precedence, right: b.Assoc == AssocRight}, false, nil
	}
	if u := ctx.Unary(tok.Text); u != nil && u.Notation == Postfix {
		tok.Fixity = FixityUnary
		return opItem[N]{tok: tok}, true, nil
	}
	return item, false, &Error{Kind: ErrUnknownOperator, Col: tok.Pos, Text: tok.Text}
}

// closeGroup pops operators to the output until the matching open bracket,
// then pops the function the bracket belonged to, if any, annotated with its
// argument count.
func (ctx *Context[N]) closeGroup(tok Token[N], out *[]Token[N], stack *[]opItem[N]) error {
	for {
		if len(*stack) == 0 {
			return &Error{Kind: ErrMismatchedGrouping, Col: tok.Pos, Text: tok.Text}
		}
		top := (*stack)[len(*stack)-1]
		*stack = (*stack)[:len(*stack)-1]
		if top.tok.Kind != KindGroupingOpen {
			*out = append(*out, top.tok)
			continue
		}
		if top.tok.Bracket != tok.Bracket {
			return &Error{Kind: ErrMismatchedGrouping, Col: tok.Pos, Text: top.tok.Text + " closed by " + tok.Text}
		}
		if len(*stack) > 0 {
			if f := (*stack)[len(*stack)-1]; f.tok.Kind == KindFunction {
				ftok := f.tok
				ftok.Argc = f.argc
				*out = append(*out, ftok)
				*stack = (*stack)[:len(*stack)-1]
			}
		}
		return nil
	}
}
