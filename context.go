package mathexpr

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Associativity is the grouping implied when operators of equal precedence
// meet.
type Associativity int

const (
	// AssocLeft groups a-b-c as (a-b)-c.
	AssocLeft Associativity = iota
	// AssocRight groups a^b^c as a^(b^c).
	AssocRight
)

// Notation is the position of a unary operator relative to its operand.
type Notation int

const (
	// Prefix is an operator before the value, e.g. -10.
	Prefix Notation = iota
	// Postfix is an operator after the value, e.g. 5!.
	Postfix
)

// UnaryOp describes a unary operator: its symbol, precedence, notation, and
// implementation.
type UnaryOp[N any] struct {
	Symbol     string
	Precedence int
	Notation   Notation
	Apply      func(x N) (N, error)
}

// BinaryOp describes a binary infix operator. Higher precedence binds
// tighter. Right-associative operators pop stacked operators only when the
// stacked precedence is strictly greater.
type BinaryOp[N any] struct {
	Symbol     string
	Precedence int
	Assoc      Associativity
	Apply      func(x, y N) (N, error)
}

// opEntry holds up to two descriptors sharing a symbol, one per arity.
type opEntry[N any] struct {
	unary  *UnaryOp[N]
	binary *BinaryOp[N]
}

// Context bundles the operator registry, function registry, constant map, and
// per-evaluation variable scope consulted by the tokenizer, converter, and
// evaluator. The registries and constants are typically frozen after
// construction; variables are assigned between evaluations.
//
// A Context is not safe for concurrent mutation, but once construction is
// complete it is safe for any number of concurrent evaluations.
type Context[N any] struct {
	backend Backend[N]
	ops     map[string]*opEntry[N]
	funcs   map[string]*Func[N]
	consts  map[string]N
	vars    map[string]N
	// exact disables case folding for constant and function names.
	exact bool
	// opMax is the rune length of the longest registered operator symbol.
	opMax int
	// steps bounds the number of reductions per evaluation. Zero means
	// unlimited.
	steps int
}

// ContextOption is an option used when creating or cloning a context.
type ContextOption[N any] interface {
	apply(*Context[N])
}

type (
	varopt[N any] struct {
		name string
		val  N
	}
	varsopt[N any]  map[string]N
	stepsopt[N any] int
	caseopt[N any]  struct{}
)

func (o varopt[N]) apply(ctx *Context[N]) { ctx.SetVar(o.name, o.val) }
func (o varsopt[N]) apply(ctx *Context[N]) {
	for k, v := range o {
		ctx.SetVar(k, v)
	}
}
func (o stepsopt[N]) apply(ctx *Context[N]) { ctx.steps = int(o) }
func (caseopt[N]) apply(ctx *Context[N])    { ctx.exact = true }

// SetVar sets the value of a variable in the context.
func SetVar[N any](name string, val N) ContextOption[N] {
	return varopt[N]{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars[N any](vars map[string]N) ContextOption[N] {
	return varsopt[N](vars)
}

// MaxSteps bounds the number of operator and function reductions per
// evaluation. Exceeding the budget fails the evaluation with
// ErrResourceExhausted. Useful for untrusted inputs.
func MaxSteps[N any](n int) ContextOption[N] {
	return stepsopt[N](n)
}

// CaseSensitive makes constant and function lookups case-sensitive. The
// default resolves names ignoring case, to match typical calculator use.
// Variables are always case-sensitive.
func CaseSensitive[N any]() ContextOption[N] {
	return caseopt[N]{}
}

// NewContext creates an empty context over the given backend. It has no
// operators, functions, or constants; most callers want one of the default
// context constructors instead.
func NewContext[N any](backend Backend[N], opts ...ContextOption[N]) *Context[N] {
	ctx := &Context[N]{
		backend: backend,
		ops:     make(map[string]*opEntry[N]),
		funcs:   make(map[string]*Func[N]),
		consts:  make(map[string]N),
		vars:    make(map[string]N),
	}
	for _, opt := range opts {
		opt.apply(ctx)
	}
	return ctx
}

// Backend returns the numeric backend the context evaluates over.
func (ctx *Context[N]) Backend() Backend[N] {
	return ctx.backend
}

// key folds a constant or function name according to the context's case
// sensitivity.
func (ctx *Context[N]) key(name string) string {
	if ctx.exact {
		return name
	}
	return strings.ToLower(name)
}

// RegisterUnary registers a unary operator. An existing unary descriptor for
// the same symbol is replaced; a binary descriptor for the same symbol is
// kept.
func (ctx *Context[N]) RegisterUnary(op *UnaryOp[N]) {
	e := ctx.ops[op.Symbol]
	if e == nil {
		e = &opEntry[N]{}
		ctx.ops[op.Symbol] = e
	}
	e.unary = op
	if n := utf8.RuneCountInString(op.Symbol); n > ctx.opMax {
		ctx.opMax = n
	}
}

// RegisterBinary registers a binary operator. An existing binary descriptor
// for the same symbol is replaced; a unary descriptor for the same symbol is
// kept.
func (ctx *Context[N]) RegisterBinary(op *BinaryOp[N]) {
	e := ctx.ops[op.Symbol]
	if e == nil {
		e = &opEntry[N]{}
		ctx.ops[op.Symbol] = e
	}
	e.binary = op
	if n := utf8.RuneCountInString(op.Symbol); n > ctx.opMax {
		ctx.opMax = n
	}
}

// RegisterFunc registers a named function, replacing any previous function
// of the same name.
func (ctx *Context[N]) RegisterFunc(f *Func[N]) {
	ctx.funcs[ctx.key(f.Name)] = f
}

// SetConst sets the value of a constant.
func (ctx *Context[N]) SetConst(name string, val N) {
	ctx.consts[ctx.key(name)] = val
}

// SetVar sets the value of a variable. Returns ctx for chaining.
func (ctx *Context[N]) SetVar(name string, val N) *Context[N] {
	ctx.vars[name] = val
	return ctx
}

// Var looks up a variable.
func (ctx *Context[N]) Var(name string) (N, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// Const looks up a constant.
func (ctx *Context[N]) Const(name string) (N, bool) {
	v, ok := ctx.consts[ctx.key(name)]
	return v, ok
}

// Unary returns the unary descriptor registered for a symbol, or nil.
func (ctx *Context[N]) Unary(sym string) *UnaryOp[N] {
	if e := ctx.ops[sym]; e != nil {
		return e.unary
	}
	return nil
}

// Binary returns the binary descriptor registered for a symbol, or nil.
func (ctx *Context[N]) Binary(sym string) *BinaryOp[N] {
	if e := ctx.ops[sym]; e != nil {
		return e.binary
	}
	return nil
}

// Func returns the function registered under a name, or nil.
func (ctx *Context[N]) Func(name string) *Func[N] {
	return ctx.funcs[ctx.key(name)]
}

// Known reports whether a symbol or name is registered as an operator,
// function, constant, or variable.
func (ctx *Context[N]) Known(name string) bool {
	if _, ok := ctx.ops[name]; ok {
		return true
	}
	if _, ok := ctx.funcs[ctx.key(name)]; ok {
		return true
	}
	if _, ok := ctx.consts[ctx.key(name)]; ok {
		return true
	}
	_, ok := ctx.vars[name]
	return ok
}

// Names returns the registered operator symbols, function names, and
// constant names, each sorted. Variables are excluded.
func (ctx *Context[N]) Names() (ops, funcs, consts []string) {
	for k := range ctx.ops {
		ops = append(ops, k)
	}
	for k := range ctx.funcs {
		funcs = append(funcs, k)
	}
	for k := range ctx.consts {
		consts = append(consts, k)
	}
	sort.Strings(ops)
	sort.Strings(funcs)
	sort.Strings(consts)
	return ops, funcs, consts
}

// Clone creates a copy of the context and applies options to it. The
// descriptor registries are copied shallowly; the variable scope is copied so
// that the clone and the original may be mutated independently.
func (ctx *Context[N]) Clone(opts ...ContextOption[N]) *Context[N] {
	n := &Context[N]{
		backend: ctx.backend,
		ops:     make(map[string]*opEntry[N], len(ctx.ops)),
		funcs:   make(map[string]*Func[N], len(ctx.funcs)),
		consts:  make(map[string]N, len(ctx.consts)),
		vars:    make(map[string]N, len(ctx.vars)),
		exact:   ctx.exact,
		opMax:   ctx.opMax,
		steps:   ctx.steps,
	}
	for k, v := range ctx.ops {
		e := *v
		n.ops[k] = &e
	}
	for k, v := range ctx.funcs {
		n.funcs[k] = v
	}
	for k, v := range ctx.consts {
		n.consts[k] = v
	}
	for k, v := range ctx.vars {
		n.vars[k] = v
	}
	for _, opt := range opts {
		opt.apply(n)
	}
	return n
}

// opSymbol reports whether s is a registered operator symbol. The tokenizer
// uses it for longest-match scanning.
func (ctx *Context[N]) opSymbol(s string) bool {
	_, ok := ctx.ops[s]
	return ok
}
