package mathexpr

import "strconv"

// TokenKind discriminates the lexical atoms produced by the tokenizer.
type TokenKind int

const (
	KindNone TokenKind = iota
	// KindNumber is a numeric literal, parsed by the backend at
	// tokenization time.
	KindNumber
	// KindIdentifier is an alphanumeric or underscore name that has not been
	// resolved yet. The tokenizer resolves every identifier into a constant,
	// function, or variable token before emitting it, so this kind appears
	// only inside the tokenizer.
	KindIdentifier
	// KindOperator is an operator symbol. Its fixity is assigned by the
	// converter, not the tokenizer.
	KindOperator
	// KindFunction is an identifier followed, possibly after whitespace, by
	// an open bracket.
	KindFunction
	// KindVariable is an identifier not followed by an open bracket.
	KindVariable
	// KindConstant is an identifier the context resolves to a fixed value.
	KindConstant
	// KindGroupingOpen is an open bracket.
	KindGroupingOpen
	// KindGroupingClose is a close bracket.
	KindGroupingClose
	// KindSeparator is a comma separating function arguments.
	KindSeparator
	// KindUnknown is an unrecognized symbol, carried so the converter can
	// report a precise error.
	KindUnknown
)

func (k TokenKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindIdentifier:
		return "Identifier"
	case KindOperator:
		return "Operator"
	case KindFunction:
		return "Function"
	case KindVariable:
		return "Variable"
	case KindConstant:
		return "Constant"
	case KindGroupingOpen:
		return "Open"
	case KindGroupingClose:
		return "Close"
	case KindSeparator:
		return "Separator"
	case KindUnknown:
		return "Unknown"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Fixity is the position of an operator relative to its operands. The
// tokenizer emits every operator with FixityNone; the converter resolves it.
type Fixity int

const (
	FixityNone Fixity = iota
	// FixityUnary marks a prefix or postfix operator of one operand.
	FixityUnary
	// FixityBinary marks an infix operator of two operands.
	FixityBinary
)

func (f Fixity) String() string {
	switch f {
	case FixityNone:
		return "none"
	case FixityUnary:
		return "unary"
	case FixityBinary:
		return "binary"
	default:
		return "Fixity(" + strconv.Itoa(int(f)) + ")"
	}
}

// Bracket is a grouping bracket kind. A close bracket must match the kind of
// its open bracket.
type Bracket int

const (
	BracketNone Bracket = iota
	// BracketParen is ( and ).
	BracketParen
	// BracketSquare is [ and ].
	BracketSquare
	// BracketCurly is { and }.
	BracketCurly
)

func (b Bracket) String() string {
	switch b {
	case BracketParen:
		return "()"
	case BracketSquare:
		return "[]"
	case BracketCurly:
		return "{}"
	default:
		return "Bracket(" + strconv.Itoa(int(b)) + ")"
	}
}

// Token is a lexical atom of an expression. The same representation is used
// for the infix stream produced by the tokenizer and the postfix stream
// produced by the converter.
type Token[N any] struct {
	// Kind discriminates the token.
	Kind TokenKind
	// Text is the original lexeme: the literal text of a number, the name of
	// an identifier, or the symbol of an operator.
	Text string
	// Value is the backend-parsed value of a number or constant token.
	Value N
	// Fixity is the resolved fixity of an operator token. The tokenizer
	// leaves it FixityNone.
	Fixity Fixity
	// Bracket is the bracket kind of a grouping token.
	Bracket Bracket
	// Argc is the argument count of a function token in the postfix stream.
	// The converter annotates it; it is meaningless in the infix stream.
	Argc int
	// Pos is the rune position of the token in the source, counting from 1.
	Pos int
}

func (t Token[N]) String() string {
	s := t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
	if t.Kind == KindOperator && t.Fixity != FixityNone {
		s += "/" + t.Fixity.String()
	}
	if t.Kind == KindFunction && t.Argc > 0 {
		s += "/" + strconv.Itoa(t.Argc)
	}
	return s
}
