// Command rlox is the command-line entry point for the interpreter. It
// runs a script file given as its one argument, or drops into an
// interactive REPL when invoked with none.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/devraj/rlox/interpreter"
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/parser"
	"github.com/devraj/rlox/repl"
	"github.com/devraj/rlox/resolver"
)

var redColor = color.New(color.FgRed)

// Exit codes follow the convention used by sysexits.h: 64 for command
// line usage errors, 65 for bad input data, 70 for internal/runtime
// failure.
const (
	exitUsage   = 64
	exitDataErr = 65
	exitSoftErr = 70
)

func main() {
	switch len(os.Args) {
	case 1:
		repl.New().Start(os.Stdout)
	case 2:
		runFile(os.Args[1])
	default:
		fmt.Fprintln(os.Stderr, "Usage: rlox [script]")
		os.Exit(exitUsage)
	}
}

// runFile reads, parses, resolves, and interprets a single script,
// recovering from any panic so one bad script can't crash the process
// without a diagnostic, and exiting with the exit code matching how far
// the pipeline got.
func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(exitDataErr)
	}

	exitCode := 0
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[runtime error] %v\n", recovered)
			os.Exit(exitSoftErr)
		}
		os.Exit(exitCode)
	}()

	l := lexer.NewLexer(string(src))
	toks := l.ScanTokens()
	if l.HasErrors() {
		for _, e := range l.Errors() {
			redColor.Fprintln(os.Stderr, e)
		}
		exitCode = exitDataErr
		return
	}

	p := parser.New(toks)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.GetErrors() {
			redColor.Fprintln(os.Stderr, e)
		}
		exitCode = exitDataErr
		return
	}

	res := resolver.New()
	res.Resolve(stmts)
	if res.HasErrors() {
		for _, e := range res.GetErrors() {
			redColor.Fprintln(os.Stderr, e)
		}
		exitCode = exitDataErr
		return
	}

	in := interpreter.New(res.Locals())
	in.Stdout = os.Stdout
	if err := in.Interpret(stmts); err != nil {
		redColor.Fprintln(os.Stderr, err)
		exitCode = exitSoftErr
		return
	}
}
