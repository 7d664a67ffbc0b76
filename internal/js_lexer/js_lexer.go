// Package js_lexer tokenizes just enough of JS/TS to let js_parser find
// import/export declaration boundaries and skip over everything else
// without losing track of brace/paren/bracket nesting, strings, template
// literals, regular expressions and comments. It does not attempt to
// tokenize the full expression grammar: identifiers, numbers, strings,
// templates and regexes become their own tokens, and every other
// character (brackets included) is emitted as a one-byte TPunct and left
// uninterpreted.
package js_lexer

import (
	"strings"

	"github.com/barrelsplit/barrelsplit/internal/logger"
)

type T uint8

const (
	TEndOfFile T = iota
	TIdent
	TNumber
	TString
	TTemplate
	TRegex
	TPunct
)

// LexerPanic is recovered by the parser's top-level Parse call; it lets deep
// lexing code bail out on malformed input (an unterminated string, say)
// without every call site threading an error return.
type LexerPanic struct{}

type Lexer struct {
	log    logger.Log
	source logger.Source

	pos int // Byte offset of the next unread byte
	end int

	Token            T
	TokenRange       logger.Range
	Identifier       string
	StringValue      string
	HasNewlineBefore bool

	// regexAllowed tracks whether a "/" at the current position should be
	// read as the start of a regular expression literal or as the division
	// operator, using the same previous-token heuristic real JS lexers use.
	regexAllowed bool
}

// keywordsAllowingRegexAfter are keywords that behave like a prefix
// operator: a "/" immediately following one of them starts a regex, not a
// division.
var keywordsAllowingRegexAfter = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "yield": true,
	"do": true, "else": true, "case": true, "await": true,
}

func NewLexer(log logger.Log, source logger.Source) Lexer {
	lex := Lexer{log: log, source: source, end: len(source.Contents), regexAllowed: true}
	lex.Next()
	return lex
}

func (lex *Lexer) raiseError(loc logger.Loc, text string) {
	lex.log.AddError(&lex.source, loc, text)
	panic(LexerPanic{})
}

func (lex *Lexer) Loc() logger.Loc {
	return logger.Loc{Start: int32(lex.TokenRange.Loc.Start)}
}

func (lex *Lexer) Raw() string {
	return lex.source.Contents[lex.TokenRange.Loc.Start : lex.TokenRange.Loc.Start+int32(lex.TokenRange.Len)]
}

func (lex *Lexer) IsIdent(text string) bool {
	return lex.Token == TIdent && lex.Identifier == text
}

func (lex *Lexer) Expect(kind T, what string) {
	if lex.Token != kind {
		lex.raiseError(lex.Loc(), "Expected "+what+" but found "+lex.describeToken())
	}
}

func (lex *Lexer) ExpectIdent(text string) {
	if !lex.IsIdent(text) {
		lex.raiseError(lex.Loc(), "Expected \""+text+"\" but found "+lex.describeToken())
	}
	lex.Next()
}

func (lex *Lexer) describeToken() string {
	switch lex.Token {
	case TEndOfFile:
		return "end of file"
	case TString, TTemplate:
		return "a string"
	default:
		return "\"" + lex.Raw() + "\""
	}
}

func (lex *Lexer) Next() {
	lex.HasNewlineBefore = lex.pos == 0
	contents := lex.source.Contents

	for {
		lex.skipWhitespaceAndComments()
		start := lex.pos

		if lex.pos >= lex.end {
			lex.Token = TEndOfFile
			lex.TokenRange = logger.Range{Loc: logger.Loc{Start: int32(start)}}
			return
		}

		c := contents[lex.pos]

		switch {
		case isIdentStart(c) || c == '\\':
			lex.pos++
			for lex.pos < lex.end && isIdentPart(contents[lex.pos]) {
				lex.pos++
			}
			lex.Identifier = contents[start:lex.pos]
			lex.Token = TIdent
			lex.regexAllowed = keywordsAllowingRegexAfter[lex.Identifier]

		case c >= '0' && c <= '9':
			lex.pos++
			for lex.pos < lex.end && isNumberPart(contents[lex.pos]) {
				lex.pos++
			}
			lex.Token = TNumber
			lex.regexAllowed = false

		case c == '"' || c == '\'':
			lex.scanString(c)
			lex.Token = TString
			lex.regexAllowed = false

		case c == '`':
			lex.scanTemplate()
			lex.Token = TTemplate
			lex.regexAllowed = false

		case c == '/' && lex.regexAllowed:
			lex.scanRegex()
			lex.Token = TRegex
			lex.regexAllowed = false

		default:
			lex.pos++
			lex.Token = TPunct
			switch c {
			case ')', ']':
				lex.regexAllowed = false
			default:
				lex.regexAllowed = true
			}
		}

		lex.TokenRange = logger.Range{Loc: logger.Loc{Start: int32(start)}, Len: int32(lex.pos - start)}
		return
	}
}

func (lex *Lexer) skipWhitespaceAndComments() {
	contents := lex.source.Contents
	for lex.pos < lex.end {
		switch contents[lex.pos] {
		case ' ', '\t', '\r':
			lex.pos++
		case '\n':
			lex.pos++
			lex.HasNewlineBefore = true
		case '/':
			if lex.pos+1 < lex.end && contents[lex.pos+1] == '/' {
				lex.pos += 2
				for lex.pos < lex.end && contents[lex.pos] != '\n' {
					lex.pos++
				}
				continue
			}
			if lex.pos+1 < lex.end && contents[lex.pos+1] == '*' {
				start := lex.pos
				lex.pos += 2
				for {
					if lex.pos+1 >= lex.end {
						lex.raiseError(logger.Loc{Start: int32(start)}, "Unterminated block comment")
					}
					if contents[lex.pos] == '*' && contents[lex.pos+1] == '/' {
						lex.pos += 2
						break
					}
					if contents[lex.pos] == '\n' {
						lex.HasNewlineBefore = true
					}
					lex.pos++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (lex *Lexer) scanString(quote byte) {
	contents := lex.source.Contents
	start := lex.pos
	lex.pos++
	var sb strings.Builder
	for {
		if lex.pos >= lex.end {
			lex.raiseError(logger.Loc{Start: int32(start)}, "Unterminated string literal")
		}
		c := contents[lex.pos]
		if c == quote {
			lex.pos++
			break
		}
		if c == '\n' {
			lex.raiseError(logger.Loc{Start: int32(start)}, "Unterminated string literal")
		}
		if c == '\\' && lex.pos+1 < lex.end {
			sb.WriteByte(contents[lex.pos+1])
			lex.pos += 2
			continue
		}
		sb.WriteByte(c)
		lex.pos++
	}
	lex.StringValue = sb.String()
}

// scanTemplate consumes a template literal, including "${ ... }"
// substitutions. Braces inside a substitution are tracked so that a "}"
// there doesn't end the template early; nested template literals inside a
// substitution are handled by recursing into the same scanner.
func (lex *Lexer) scanTemplate() {
	contents := lex.source.Contents
	start := lex.pos
	lex.pos++ // opening backtick
	for {
		if lex.pos >= lex.end {
			lex.raiseError(logger.Loc{Start: int32(start)}, "Unterminated template literal")
		}
		c := contents[lex.pos]
		if c == '`' {
			lex.pos++
			return
		}
		if c == '\\' && lex.pos+1 < lex.end {
			lex.pos += 2
			continue
		}
		if c == '$' && lex.pos+1 < lex.end && contents[lex.pos+1] == '{' {
			lex.pos += 2
			depth := 1
			for depth > 0 {
				if lex.pos >= lex.end {
					lex.raiseError(logger.Loc{Start: int32(start)}, "Unterminated template literal")
				}
				switch contents[lex.pos] {
				case '{':
					depth++
					lex.pos++
				case '}':
					depth--
					lex.pos++
				case '`':
					lex.scanTemplate()
				case '"', '\'':
					lex.scanString(contents[lex.pos])
				default:
					lex.pos++
				}
			}
			continue
		}
		lex.pos++
	}
}

func (lex *Lexer) scanRegex() {
	contents := lex.source.Contents
	start := lex.pos
	lex.pos++ // opening slash
	inClass := false
	for {
		if lex.pos >= lex.end || contents[lex.pos] == '\n' {
			lex.raiseError(logger.Loc{Start: int32(start)}, "Unterminated regular expression")
		}
		c := contents[lex.pos]
		if c == '\\' && lex.pos+1 < lex.end {
			lex.pos += 2
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			lex.pos++
			break
		}
		lex.pos++
	}
	for lex.pos < lex.end && isIdentPart(contents[lex.pos]) {
		lex.pos++ // flags
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isNumberPart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '_' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
		c == 'x' || c == 'X' || c == 'o' || c == 'O' || c == 'b' || c == 'B' ||
		c == 'e' || c == 'E' || c == 'n' || c == '+' || c == '-'
}
