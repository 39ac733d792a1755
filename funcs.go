package mathexpr

// Variadic marks a function with no upper argument bound.
const Variadic = -1

// Func describes a named function: its arity range and implementation. The
// evaluator validates the argument count against [MinArgs, MaxArgs] before
// dispatching to Apply.
type Func[N any] struct {
	Name string
	// MinArgs is the least argument count accepted.
	MinArgs int
	// MaxArgs is the greatest argument count accepted, or Variadic for no
	// bound.
	MaxArgs int
	// Apply evaluates the function over already-evaluated arguments in
	// source order.
	Apply func(args []N) (N, error)
}

// CanCall reports whether the function can be called with n arguments.
func (f *Func[N]) CanCall(n int) bool {
	if n < f.MinArgs {
		return false
	}
	return f.MaxArgs == Variadic || n <= f.MaxArgs
}

// Monadic wraps a function of one argument into a Func.
func Monadic[N any](name string, apply func(x N) (N, error)) *Func[N] {
	return &Func[N]{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Apply: func(args []N) (N, error) {
			return apply(args[0])
		},
	}
}

// registerCommon registers the arithmetic operators and the variadic
// aggregate functions every default context carries, all expressed in terms
// of the backend.
func registerCommon[N any](ctx *Context[N]) {
	b := ctx.backend
	ctx.RegisterBinary(&BinaryOp[N]{Symbol: "+", Precedence: 1, Assoc: AssocLeft, Apply: b.Add})
	ctx.RegisterBinary(&BinaryOp[N]{Symbol: "-", Precedence: 1, Assoc: AssocLeft, Apply: b.Sub})
	ctx.RegisterBinary(&BinaryOp[N]{Symbol: "*", Precedence: 2, Assoc: AssocLeft, Apply: b.Mul})
	ctx.RegisterBinary(&BinaryOp[N]{Symbol: "/", Precedence: 2, Assoc: AssocLeft, Apply: b.Div})
	ctx.RegisterUnary(&UnaryOp[N]{Symbol: "-", Precedence: 3, Notation: Prefix, Apply: b.Neg})
	ctx.RegisterUnary(&UnaryOp[N]{Symbol: "+", Precedence: 3, Notation: Prefix, Apply: func(x N) (N, error) {
		return x, nil
	}})

	ctx.RegisterFunc(&Func[N]{Name: "sum", MinArgs: 1, MaxArgs: Variadic, Apply: func(args []N) (N, error) {
		return fold(b.Add, args)
	}})
	ctx.RegisterFunc(&Func[N]{Name: "prod", MinArgs: 1, MaxArgs: Variadic, Apply: func(args []N) (N, error) {
		return fold(b.Mul, args)
	}})
	ctx.RegisterFunc(&Func[N]{Name: "avg", MinArgs: 1, MaxArgs: Variadic, Apply: func(args []N) (N, error) {
		total, err := fold(b.Add, args)
		if err != nil {
			var zero N
			return zero, err
		}
		count := b.Zero()
		for range args {
			if count, err = b.Add(count, b.One()); err != nil {
				var zero N
				return zero, err
			}
		}
		return b.Div(total, count)
	}})
	ctx.RegisterFunc(&Func[N]{Name: "max", MinArgs: 1, MaxArgs: Variadic, Apply: func(args []N) (N, error) {
		return pick(b, args, func(c int) bool { return c > 0 })
	}})
	ctx.RegisterFunc(&Func[N]{Name: "min", MinArgs: 1, MaxArgs: Variadic, Apply: func(args []N) (N, error) {
		return pick(b, args, func(c int) bool { return c < 0 })
	}})
}

// fold reduces args left to right with a binary backend operation.
func fold[N any](op func(x, y N) (N, error), args []N) (N, error) {
	acc := args[0]
	var err error
	for _, x := range args[1:] {
		if acc, err = op(acc, x); err != nil {
			var zero N
			return zero, err
		}
	}
	return acc, nil
}

// pick selects the argument whose comparison against the running choice
// satisfies better.
func pick[N any](b Backend[N], args []N, better func(c int) bool) (N, error) {
	best := args[0]
	for _, x := range args[1:] {
		c, err := b.Cmp(x, best)
		if err != nil {
			var zero N
			return zero, err
		}
		if better(c) {
			best = x
		}
	}
	return best, nil
}
