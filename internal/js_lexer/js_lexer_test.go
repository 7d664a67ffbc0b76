package js_lexer

import (
	"testing"

	"github.com/barrelsplit/barrelsplit/internal/logger"
	"github.com/barrelsplit/barrelsplit/internal/test"
)

func lexAll(t *testing.T, contents string) (tokens []T, texts []string) {
	log := logger.NewDeferLog()
	lex := NewLexer(log, test.SourceForTest(contents))
	for lex.Token != TEndOfFile {
		tokens = append(tokens, lex.Token)
		texts = append(texts, lex.Raw())
		lex.Next()
	}
	msgs := log.Done()
	if len(msgs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", msgs)
	}
	return
}

func TestIdentifiersAndKeywords(t *testing.T) {
	_, texts := lexAll(t, "import foo from bar")
	test.AssertEqualWithDiff(t, texts[0]+" "+texts[1]+" "+texts[2]+" "+texts[3], "import foo from bar")
}

func TestStringLiteral(t *testing.T) {
	log := logger.NewDeferLog()
	lex := NewLexer(log, test.SourceForTest(`"hello\nworld"`))
	test.AssertEqual(t, lex.Token, TString)
	test.AssertEqual(t, lex.StringValue, "hellonworld")
}

func TestTemplateLiteralWithSubstitution(t *testing.T) {
	_, texts := lexAll(t, "const x = `a${ `nested ${1}` }b`;")
	found := false
	for _, text := range texts {
		if text == "`a${ `nested ${1}` }b`" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a single template token, got %v", texts)
	}
}

func TestRegexVsDivide(t *testing.T) {
	tokens, texts := lexAll(t, "a = b / c")
	sawDivide := false
	for i, tok := range tokens {
		if tok == TPunct && texts[i] == "/" {
			sawDivide = true
		}
	}
	if !sawDivide {
		t.Fatalf("expected \"/\" to lex as division, got %v", texts)
	}

	tokens, texts = lexAll(t, "return /foo/g")
	sawRegex := false
	for i, tok := range tokens {
		if tok == TRegex {
			sawRegex = true
			test.AssertEqualWithDiff(t, texts[i], "/foo/g")
		}
	}
	if !sawRegex {
		t.Fatalf("expected a regex token, got %v", texts)
	}
}

func TestLineComment(t *testing.T) {
	tokens, texts := lexAll(t, "a // comment with { unmatched braces\nb")
	test.AssertEqual(t, len(tokens), 2)
	test.AssertEqualWithDiff(t, texts[0], "a")
	test.AssertEqualWithDiff(t, texts[1], "b")
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	log := logger.NewDeferLog()
	func() {
		defer func() { recover() }()
		lex := NewLexer(log, test.SourceForTest(`"unterminated`))
		_ = lex
	}()
	if !log.HasErrors() {
		t.Fatalf("expected an error for an unterminated string")
	}
}
