package resolver

import (
	"testing"

	"github.com/devraj/rlox/ast"
	"github.com/devraj/rlox/lexer"
	"github.com/devraj/rlox/parser"
	"github.com/stretchr/testify/assert"
)

func resolveSrc(t *testing.T, src string) (*Resolver, []ast.Stmt) {
	t.Helper()
	toks := lexer.NewLexer(src).ScanTokens()
	p := parser.New(toks)
	stmts := p.Parse()
	assert.False(t, p.HasErrors(), "unexpected parse errors: %v", p.GetErrors())
	r := New()
	r.Resolve(stmts)
	return r, stmts
}

func TestResolver_GlobalIsNotLocal(t *testing.T) {
	r, stmts := resolveSrc(t, `var x = 1; print x;`)
	assert.False(t, r.HasErrors())

	printStmt := stmts[1].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)
	_, found := r.Locals()[variable.NodeID()]
	assert.False(t, found, "global reference should not appear in the local depth map")
}

func TestResolver_BlockLocalHasDepthZero(t *testing.T) {
	r, stmts := resolveSrc(t, `{ var x = 1; print x; }`)
	assert.False(t, r.HasErrors())

	block := stmts[0].(*ast.Block)
	printStmt := block.Statements[1].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)
	depth, found := r.Locals()[variable.NodeID()]
	assert.True(t, found)
	assert.Equal(t, 0, depth)
}

func TestResolver_ClosureOverOuterLocalHasDepthOne(t *testing.T) {
	r, stmts := resolveSrc(t, `{ var x = 1; { print x; } }`)
	assert.False(t, r.HasErrors())

	outer := stmts[0].(*ast.Block)
	inner := outer.Statements[1].(*ast.Block)
	printStmt := inner.Statements[0].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)
	depth, found := r.Locals()[variable.NodeID()]
	assert.True(t, found)
	assert.Equal(t, 1, depth)
}

func TestResolver_SelfInitializationIsAnError(t *testing.T) {
	toks := lexer.NewLexer(`{ var a = a; }`).ScanTokens()
	p := parser.New(toks)
	stmts := p.Parse()
	assert.False(t, p.HasErrors())

	r := New()
	r.Resolve(stmts)
	assert.True(t, r.HasErrors())
	assert.Contains(t, r.GetErrors()[0], "own initializer")
}

func TestResolver_DuplicateLocalDeclarationIsAnError(t *testing.T) {
	toks := lexer.NewLexer(`{ var a = 1; var a = 2; }`).ScanTokens()
	p := parser.New(toks)
	stmts := p.Parse()
	assert.False(t, p.HasErrors())

	r := New()
	r.Resolve(stmts)
	assert.True(t, r.HasErrors())
}

func TestResolver_FunctionCanRecurse(t *testing.T) {
	r, _ := resolveSrc(t, `fun fact(n) { if (n <= 1) return 1; return n * fact(n - 1); }`)
	assert.False(t, r.HasErrors())
}
