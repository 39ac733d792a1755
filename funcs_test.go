package mathexpr

import "testing"

func TestFuncCanCall(t *testing.T) {
	cases := []struct {
		min, max int
		n        int
		want     bool
	}{
		{1, Variadic, 0, false},
		{1, Variadic, 1, true},
		{1, Variadic, 100, true},
		{0, 0, 0, true},
		{0, 0, 1, false},
		{2, 2, 1, false},
		{2, 2, 2, true},
		{0, 2, 3, false},
		{0, 2, 2, true},
	}
	for _, c := range cases {
		f := &Func[float64]{Name: "f", MinArgs: c.min, MaxArgs: c.max}
		if got := f.CanCall(c.n); got != c.want {
			t.Errorf("CanCall(%d) with arity [%d, %d]: want %v, got %v", c.n, c.min, c.max, c.want, got)
		}
	}
}

func TestRegisterReplaces(t *testing.T) {
	ctx := NewFloatContext()
	ctx.RegisterBinary(&BinaryOp[float64]{Symbol: "+", Precedence: 1, Assoc: AssocLeft, Apply: func(x, y float64) (float64, error) {
		return 100, nil
	}})
	r, err := New(ctx).Eval("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	if r != 100 {
		t.Errorf("replaced + returned %v", r)
	}
	// The unary descriptor for the same symbol is untouched.
	r, err = New(ctx).Eval("+5")
	if err != nil {
		t.Fatal(err)
	}
	if r != 5 {
		t.Errorf("unary + returned %v", r)
	}
}

func TestAggregatesUseBackend(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"sum(5)", 5},
		{"max(5)", 5},
		{"min(3, 1, 2)", 1},
		{"avg(2, 4, 6, 8)", 5},
		{"prod(1, 2, 3, 4, 5)", 120},
	}
	for _, c := range cases {
		r, err := EvalFloat(c.src)
		if err != nil {
			t.Errorf("evaluating %q: %v", c.src, err)
			continue
		}
		if r != c.want {
			t.Errorf("evaluating %q: want %v, got %v", c.src, c.want, r)
		}
	}
}
