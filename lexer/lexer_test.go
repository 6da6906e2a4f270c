package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func typesOf(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_Punctuation(t *testing.T) {
	lex := NewLexer(`(){},.-+;*/`)
	tokens := lex.ScanTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, SLASH, EOF,
	}, typesOf(tokens))
}

func TestLexer_TwoCharacterOperators(t *testing.T) {
	lex := NewLexer(`! != = == < <= > >=`)
	tokens := lex.ScanTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []TokenType{
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, EOF,
	}, typesOf(tokens))
}

func TestLexer_KeywordsVsIdentifiers(t *testing.T) {
	lex := NewLexer(`var x = foo and bar or baz`)
	tokens := lex.ScanTokens()
	assert.Equal(t, []TokenType{
		VAR, IDENTIFIER, EQUAL, IDENTIFIER, AND, IDENTIFIER, OR, IDENTIFIER, EOF,
	}, typesOf(tokens))
}

func TestLexer_NumberLiteral(t *testing.T) {
	lex := NewLexer(`123 45.67`)
	tokens := lex.ScanTokens()
	require := assert.New(t)
	require.Equal(NUMBER, tokens[0].Type)
	require.Equal(float64(123), tokens[0].Literal)
	require.Equal(NUMBER, tokens[1].Type)
	require.Equal(45.67, tokens[1].Literal)
}

func TestLexer_StringLiteral(t *testing.T) {
	lex := NewLexer(`"hello world"`)
	tokens := lex.ScanTokens()
	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestLexer_StringWithEmbeddedNewlineTracksLine(t *testing.T) {
	lex := NewLexer("\"a\nb\" 1")
	tokens := lex.ScanTokens()
	assert.Equal(t, "a\nb", tokens[0].Literal)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestLexer_UnterminatedStringIsAnError(t *testing.T) {
	lex := NewLexer(`"abc`)
	lex.ScanTokens()
	assert.True(t, lex.HasErrors())
}

func TestLexer_LineComment(t *testing.T) {
	lex := NewLexer("1 // this is ignored\n2")
	tokens := lex.ScanTokens()
	assert.Equal(t, []TokenType{NUMBER, NUMBER, EOF}, typesOf(tokens))
	assert.Equal(t, float64(2), tokens[1].Literal)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestLexer_NestedBlockComment(t *testing.T) {
	lex := NewLexer("1 /* outer /* inner */ still-inside */ 2")
	tokens := lex.ScanTokens()
	assert.False(t, lex.HasErrors())
	assert.Equal(t, []TokenType{NUMBER, NUMBER, EOF}, typesOf(tokens))
}

func TestLexer_UnexpectedCharacterIsAnError(t *testing.T) {
	lex := NewLexer(`@`)
	lex.ScanTokens()
	assert.True(t, lex.HasErrors())
	assert.Contains(t, lex.Errors()[0], "Unexpected Character: '@'")
}

func TestLexer_Determinism(t *testing.T) {
	src := `var greeting = "hi" + 1; while (greeting) { print greeting; }`
	first := NewLexer(src).ScanTokens()
	second := NewLexer(src).ScanTokens()
	assert.Equal(t, typesOf(first), typesOf(second))
}
