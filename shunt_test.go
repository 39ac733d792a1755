package mathexpr

import (
	"errors"
	"testing"
)

// rpnText renders a postfix sequence compactly for comparison.
func rpnText(tokens []Token[float64]) string {
	s := ""
	for i, tok := range tokens {
		if i > 0 {
			s += " "
		}
		s += tok.Text
		if tok.Kind == KindFunction {
			s += "/"
			s += string(rune('0' + tok.Argc))
		}
	}
	return s
}

func TestConvert(t *testing.T) {
	ctx := NewFloatContext()
	cases := []struct {
		src  string
		want string
	}{
		{"2 + 3", "2 3 +"},
		{"2 + 3 * 5", "2 3 5 * +"},
		{"(2 + 3) * 5", "2 3 + 5 *"},
		{"2 ^ 3 ^ 2", "2 3 2 ^ ^"},
		{"2 - 3 - 4", "2 3 - 4 -"},
		// Unary minus binds tighter than multiplication but looser than
		// exponentiation.
		{"-2 ^ 2", "2 2 ^ -"},
		{"-2 * 3", "2 - 3 *"},
		{"2 ^ -3", "2 3 - ^"},
		{"---5", "5 - - -"},
		{"(1)-2", "1 2 -"},
		{"5!", "5 !"},
		{"-3!", "3 ! -"},
		{"2 ^ 3!", "2 3 ! ^"},
		{"sum(1, 2, 3, 4)", "1 2 3 4 sum/4"},
		{"rand()", "rand/0"},
		{"max(1, min(2, 3))", "1 2 3 min/2 max/2"},
		{"max((1+2), 3)", "1 2 + 3 max/2"},
		{"sum(1+2, 3*4)", "1 2 + 3 4 * sum/2"},
		{"{[(1+2)]}", "1 2 +"},
	}
	for _, c := range cases {
		rpn, err := ctx.Convert(ctx.Tokenize(c.src))
		if err != nil {
			t.Errorf("converting %q: %v", c.src, err)
			continue
		}
		if got := rpnText(rpn); got != c.want {
			t.Errorf("converting %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestConvertFixity(t *testing.T) {
	ctx := NewFloatContext()
	rpn, err := ctx.Convert(ctx.Tokenize("-2 - 2"))
	if err != nil {
		t.Fatal(err)
	}
	var unary, binary int
	for _, tok := range rpn {
		if tok.Kind != KindOperator {
			continue
		}
		switch tok.Fixity {
		case FixityUnary:
			unary++
		case FixityBinary:
			binary++
		default:
			t.Errorf("operator %v with unresolved fixity", tok)
		}
	}
	if unary != 1 || binary != 1 {
		t.Errorf("want 1 unary and 1 binary operator, got %d and %d", unary, binary)
	}
}

func TestConvertErrors(t *testing.T) {
	ctx := NewFloatContext()
	cases := []struct {
		src  string
		kind ErrorKind
		col  int
	}{
		{"", ErrEmptyExpression, 1},
		{"   ", ErrEmptyExpression, 1},
		{"()", ErrEmptyExpression, 2},
		{"1 ? 2", ErrUnexpectedCharacter, 3},
		{"1 * * 2", ErrUnknownOperator, 5},
		{"!1", ErrUnknownOperator, 1},
		{"[1 + 2}", ErrMismatchedGrouping, 7},
		{"1 + 2)", ErrMismatchedGrouping, 6},
		{"((1 + 2)", ErrUnbalancedGrouping, 1},
		{"1, 2", ErrMisplacedSeparator, 2},
		{"(1, 2)", ErrMisplacedSeparator, 3},
		{"max((1, 2), 3)", ErrMisplacedSeparator, 7},
		{"1 +", ErrMalformedExpression, 3},
		{"2 3", ErrMalformedExpression, 3},
		{"2x", ErrMalformedExpression, 2},
		{"max(1,)", ErrMalformedExpression, 7},
	}
	for _, c := range cases {
		_, err := ctx.Convert(ctx.Tokenize(c.src))
		if err == nil {
			t.Errorf("converting %q: no error", c.src)
			continue
		}
		var e *Error
		if !errors.As(err, &e) {
			t.Errorf("converting %q: error %v is not an *Error", c.src, err)
			continue
		}
		if e.Kind != c.kind {
			t.Errorf("converting %q: want kind %v, got %v (%v)", c.src, c.kind, e.Kind, err)
		}
		if e.Col != c.col {
			t.Errorf("converting %q: want column %d, got %d (%v)", c.src, c.col, e.Col, err)
		}
	}
}

func TestConvertRightAssociativeCustom(t *testing.T) {
	// A freshly registered right-associative operator pops only on strictly
	// greater stacked precedence.
	ctx := NewFloatContext()
	ctx.RegisterBinary(&BinaryOp[float64]{Symbol: "**", Precedence: 4, Assoc: AssocRight, Apply: floatPow})
	rpn, err := ctx.Convert(ctx.Tokenize("2**3**2"))
	if err != nil {
		t.Fatal(err)
	}
	if got := rpnText(rpn); got != "2 3 2 ** **" {
		t.Errorf("converting 2**3**2: got %q", got)
	}
}
