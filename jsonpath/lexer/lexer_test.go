package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerBasicTokens(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "$.store.book[0].title")
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{
		Root, Dot, Ident, Dot, Ident, LBracket, Number, RBracket, Dot, Ident, EOF,
	}, kinds)
}

func TestLexerRecursiveDescent(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "$..author")
	assert.Equal(t, DotDot, toks[1].Kind)
	assert.Equal(t, Ident, toks[2].Kind)
	assert.Equal(t, "author", toks[2].Lit)
}

func TestLexerBracketQuotedProperty(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `$['first name']`)
	assert.Equal(t, String, toks[2].Kind)
	assert.Equal(t, "first name", toks[2].Lit)
}

func TestLexerStringEscapes(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `$['a\'b']`)
	assert.Equal(t, "a'b", toks[2].Lit)
}

func TestLexerNegativeNumber(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "$[-1]")
	assert.Equal(t, Number, toks[2].Kind)
	assert.Equal(t, "-1", toks[2].Lit)
}

func TestLexerFilterCapturesBalancedParens(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "$[?(@.price<(10+5))]")
	var filterTok Token
	for _, tok := range toks {
		if tok.Kind == QuestionParen {
			filterTok = tok
		}
	}
	assert.Equal(t, "@.price<(10+5)", filterTok.Lit)
}

func TestLexerFilterIgnoresParensInQuotedStrings(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `$[?(@.name=='a)b')]`)
	var filterTok Token
	for _, tok := range toks {
		if tok.Kind == QuestionParen {
			filterTok = tok
		}
	}
	assert.Equal(t, `@.name=='a)b'`, filterTok.Lit)
}

func TestLexerUnterminatedFilterFails(t *testing.T) {
	t.Parallel()

	l := New("$[?(@.price<10")
	for {
		tok, err := l.Next()
		if err != nil {
			assert.ErrorIs(t, err, ErrLex)
			return
		}
		if tok.Kind == EOF {
			t.Fatal("expected lex error, got clean EOF")
		}
	}
}

func TestLexerUnicodeIdentifier(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "$.café")
	assert.Equal(t, "café", toks[2].Lit)
}

func TestLexerRejectsUnexpectedCharacter(t *testing.T) {
	t.Parallel()

	l := New("$.a#b")
	for {
		tok, err := l.Next()
		if err != nil {
			assert.ErrorIs(t, err, ErrLex)
			return
		}
		if tok.Kind == EOF {
			t.Fatal("expected lex error, got clean EOF")
		}
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$", Root.String())
	assert.Equal(t, "?(...)", QuestionParen.String())
}
