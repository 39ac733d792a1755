// Command mathexpr evaluates arithmetic expressions from its arguments,
// stdin, or an interactive session.
//
//	mathexpr '2 + 3 * 5'
//	mathexpr -decimal -given x=10 -given y=3.5 '(x - y) ^ 2'
//	mathexpr -run
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/exprlang/mathexpr"
)

// session erases the backend's number type behind string results so main
// can treat every backend uniformly.
type session interface {
	eval(expr string) (string, error)
	assign(name, expr string) error
	dump() string
}

type backendSession[N any] struct {
	ev *mathexpr.Evaluator[N]
}

func newSession[N any](ctx *mathexpr.Context[N]) session {
	return &backendSession[N]{ev: mathexpr.New(ctx)}
}

func (s *backendSession[N]) eval(expr string) (string, error) {
	v, err := s.ev.Eval(expr)
	if err != nil {
		return "", err
	}
	return s.ev.Context().Backend().Format(v), nil
}

func (s *backendSession[N]) assign(name, expr string) error {
	v, err := s.ev.Eval(expr)
	if err != nil {
		return err
	}
	s.ev.Context().SetVar(name, v)
	return nil
}

func (s *backendSession[N]) dump() string {
	ops, funcs, consts := s.ev.Context().Names()
	var b strings.Builder
	b.WriteString("operators: " + strings.Join(ops, " ") + "\n")
	b.WriteString("functions: " + strings.Join(funcs, " ") + "\n")
	b.WriteString("constants: " + strings.Join(consts, " ") + "\n")
	return b.String()
}

func main() {
	log.SetFlags(0)
	var (
		useDecimal, useBig, useComplex, useInt bool
		run, dump                              bool
		prec                                   int
		given                                  [][2]string
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.BoolVar(&useDecimal, "decimal", false, "evaluate with the decimal backend")
	flag.BoolVar(&useBig, "bigdecimal", false, "evaluate with the arbitrary-precision float backend")
	flag.BoolVar(&useComplex, "complex", false, "evaluate with the complex backend")
	flag.BoolVar(&useInt, "int", false, "evaluate with the integer backend")
	flag.IntVar(&prec, "p", mathexpr.DefaultPrec, "precision in bits for -bigdecimal")
	flag.BoolVar(&run, "run", false, "read and evaluate expressions interactively")
	flag.BoolVar(&dump, "context", false, "print the registered operators, functions, and constants")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}

	var s session
	switch {
	case useDecimal:
		s = newSession(mathexpr.NewDecimalContext())
	case useBig:
		s = newSession(mathexpr.NewBigFloatContext(uint(prec)))
	case useComplex:
		s = newSession(mathexpr.NewComplexContext())
	case useInt:
		s = newSession(mathexpr.NewIntContext())
	default:
		s = newSession(mathexpr.NewFloatContext())
	}
	for _, d := range given {
		if err := s.assign(d[0], d[1]); err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
	}

	if dump {
		fmt.Print(s.dump())
		return
	}
	if run {
		repl(s)
		return
	}
	if flag.NArg() == 0 {
		evalLines(s, os.Stdin)
		return
	}
	for _, arg := range flag.Args() {
		r, err := s.eval(arg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(r)
	}
}

// evalLines evaluates each input line as a separate expression.
func evalLines(s session, f *os.File) {
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		r, err := s.eval(line)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(r)
	}
	if err := scan.Err(); err != nil {
		log.Fatal(err)
	}
}

// repl reads expressions interactively. A line of the form "name = expr"
// assigns a variable for the rest of the session.
func repl(s session) {
	scan := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		switch line {
		case "":
			fmt.Print("> ")
			continue
		case "exit", "quit":
			return
		}
		if name, expr, ok := assignment(line); ok {
			if err := s.assign(name, expr); err != nil {
				fmt.Println(err)
			}
			fmt.Print("> ")
			continue
		}
		r, err := s.eval(line)
		if err != nil {
			fmt.Println(err)
		} else {
			fmt.Println(r)
		}
		fmt.Print("> ")
	}
}

// assignment splits "name = expr" when the left side is a plain identifier.
func assignment(line string) (name, expr string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:i])
	if name == "" {
		return "", "", false
	}
	for j, r := range name {
		if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		if j > 0 && r >= '0' && r <= '9' {
			continue
		}
		return "", "", false
	}
	return name, strings.TrimSpace(line[i+1:]), true
}
