// Package repl implements the interactive Read-Eval-Print Loop: it reads
// one line at a time, runs it through the full lexer/parser/resolver/
// interpreter pipeline, and prints whatever it printed plus any error,
// all while keeping variables and functions alive across lines.
package repl

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/devraj/rlox/interpreter"
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/parser"
	"github.com/devraj/rlox/resolver"
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
	blueColor = color.New(color.FgBlue)
)

const prompt = "rlox >>> "

// Repl is an interactive session. It keeps its own Interpreter alive
// across lines so `var x = 1;` on one line and `print x;` on the next
// see the same global scope.
type Repl struct {
	interp *interpreter.Interpreter
}

// New creates a Repl with a fresh global environment.
func New() *Repl {
	return &Repl{interp: interpreter.New(make(map[int]int))}
}

// Start runs the loop until EOF (Ctrl+D) or the `.exit` command.
func (r *Repl) Start(writer io.Writer) {
	blueColor.Fprintln(writer, "rlox -- a tree-walking Lox interpreter")
	cyanColor.Fprintln(writer, "Type '.exit' to quit.")

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	r.interp.Stdout = writer

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return
		}
		rl.SaveHistory(line)

		r.executeWithRecovery(writer, line)
	}
}

// executeWithRecovery runs one line of input through the full pipeline.
// A panic anywhere in that pipeline is reported as a runtime error
// instead of crashing the REPL — the only recover site in the REPL,
// mirroring how file execution recovers once at its own top level.
// Diagnostics go to stderr; `print` output goes to the interpreter's
// Stdout writer.
func (r *Repl) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[runtime error] %v\n", recovered)
		}
	}()

	toks := lexer.NewLexer(line).ScanTokens()

	p := parser.New(toks)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.GetErrors() {
			redColor.Fprintln(os.Stderr, e)
		}
		return
	}

	res := resolver.New()
	res.Resolve(stmts)
	if res.HasErrors() {
		for _, e := range res.GetErrors() {
			redColor.Fprintln(os.Stderr, e)
		}
		return
	}
	for id, depth := range res.Locals() {
		r.interp.Resolve(id, depth)
	}

	if err := r.interp.Interpret(stmts); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
	}
}
