// Package js_parser turns a source file into a js_ast.File: an ordered list
// of top-level statements where only import and export declarations are
// understood, and every other run of statements is kept as one opaque
// js_ast.SOther block. It is not a JS/TS expression parser; statement bodies
// (function bodies, class bodies, object literals, control flow) are only
// ever scanned for brace/paren/bracket balance, never interpreted.
package js_parser

import (
	"github.com/barrelsplit/barrelsplit/internal/js_ast"
	"github.com/barrelsplit/barrelsplit/internal/js_lexer"
	"github.com/barrelsplit/barrelsplit/internal/logger"
)

type parser struct {
	log    logger.Log
	source logger.Source
	lex    js_lexer.Lexer

	// lastEnd is the byte offset just past the most recently consumed token.
	// It's what Parse uses to carve out each Stmt.Raw, rather than the next
	// token's start, so that whitespace and comments between statements are
	// never dropped.
	lastEnd int32
}

// parserPanic is raised by fail and recovered in Parse, alongside the
// lexer's own LexerPanic.
type parserPanic struct{}

// Parse reads source from the beginning and returns every top-level
// statement it finds. A syntax error inside a recognised import/export
// declaration is recorded on log and parsing stops; everything already
// collected is still returned so callers can decide whether a partial
// result is usable. The remaining unparsed bytes are appended to the last
// collected statement's Raw, or become a lone SOther when nothing was
// collected.
func Parse(log logger.Log, source logger.Source) *js_ast.File {
	p := &parser{log: log, source: source, lex: js_lexer.NewLexer(log, source)}
	var stmts []js_ast.Stmt
	var prevEnd int32

	func() {
		defer func() {
			if r := recover(); r != nil {
				switch r.(type) {
				case js_lexer.LexerPanic, parserPanic:
					// Already recorded on log.
				default:
					panic(r)
				}
			}
		}()

		for p.lex.Token != js_lexer.TEndOfFile {
			start := prevEnd
			coreStart := p.lex.TokenRange.Loc.Start
			var data js_ast.S

			switch {
			case p.lex.IsIdent("import") && p.importStartsDeclaration():
				data = p.parseImport()
			case p.lex.IsIdent("export"):
				data = p.parseExport()
			default:
				data = p.parseOtherRun()
			}

			end := p.lastEnd
			if end < start {
				end = start
			}
			stmts = append(stmts, js_ast.Stmt{
				Range:     logger.Range{Loc: logger.Loc{Start: start}, Len: end - start},
				Raw:       source.Contents[start:end],
				Data:      data,
				CoreStart: logger.Loc{Start: coreStart},
			})
			prevEnd = end
		}
	}()

	if trailing := source.Contents[prevEnd:]; trailing != "" {
		if len(stmts) > 0 {
			last := &stmts[len(stmts)-1]
			last.Raw += trailing
			last.Range.Len += int32(len(trailing))
		} else {
			stmts = append(stmts, js_ast.Stmt{
				Range: logger.Range{Loc: logger.Loc{Start: prevEnd}, Len: int32(len(trailing))},
				Raw:   trailing,
				Data:  &js_ast.SOther{},
			})
		}
	}

	return &js_ast.File{Source: source, Stmts: stmts}
}

func (p *parser) advance() {
	p.lastEnd = p.lex.TokenRange.End()
	p.lex.Next()
}

func (p *parser) fail(loc logger.Loc, text string) {
	p.log.AddError(&p.source, loc, text)
	panic(parserPanic{})
}

func (p *parser) expectToken(kind js_lexer.T) {
	if p.lex.Token != kind {
		p.fail(p.lex.Loc(), "Unexpected token \""+p.lex.Raw()+"\"")
	}
}

func (p *parser) expectIdentText(text string) {
	if !p.lex.IsIdent(text) {
		p.fail(p.lex.Loc(), "Expected \""+text+"\"")
	}
}

func (p *parser) consumeOptionalSemi() {
	if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == ";" {
		p.advance()
	}
}

// importStartsDeclaration distinguishes "import ... from ..." and
// "import 'x'" declarations from the dynamic import() call expression and
// from "import.meta", neither of which is a declaration at all.
func (p *parser) importStartsDeclaration() bool {
	save := p.lex
	save.Next()
	if save.Token == js_lexer.TPunct && (save.Raw() == "(" || save.Raw() == ".") {
		return false
	}
	return true
}

// skipToNextBoundary consumes tokens, tracking bracket/brace/paren depth,
// until it reaches end of file or an "import"/"export" keyword sitting at
// depth 0 that isn't itself a property-access target (e.g. "foo.import").
// An "import" only counts when it starts a declaration, so a dynamic
// import() call or "import.meta" stays inside the current run. It never
// consumes the boundary token itself.
func (p *parser) skipToNextBoundary() {
	depth := 0
	prevWasDot := false

	for {
		if p.lex.Token == js_lexer.TEndOfFile {
			return
		}
		if depth == 0 && !prevWasDot && p.lex.Token == js_lexer.TIdent &&
			(p.lex.Identifier == "export" || (p.lex.Identifier == "import" && p.importStartsDeclaration())) {
			return
		}

		if p.lex.Token == js_lexer.TPunct {
			switch p.lex.Raw() {
			case "{", "(", "[":
				depth++
			case "}", ")", "]":
				if depth > 0 {
					depth--
				}
			}
		}

		prevWasDot = p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "."
		p.advance()
	}
}

// parseOtherRun consumes one non-import/export token plus everything up to
// the next statement boundary, and reports it as a single opaque statement.
func (p *parser) parseOtherRun() js_ast.S {
	p.advance()
	p.skipToNextBoundary()
	return &js_ast.SOther{}
}

// skipBraceBlock consumes a balanced "{ ... }" run; it must be called with
// the lexer sitting on the opening brace.
func (p *parser) skipBraceBlock() {
	depth := 0
	for {
		if p.lex.Token == js_lexer.TEndOfFile {
			return
		}
		if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "{" {
			depth++
		}
		if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "}" {
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// skipImportAttributes consumes a trailing "assert { ... }" or
// "with { ... }" clause if present. The attributes themselves are never
// inspected; the barrel rewriter has no use for them.
func (p *parser) skipImportAttributes() {
	if !p.lex.IsIdent("assert") && !p.lex.IsIdent("with") {
		return
	}
	save := p.lex
	save.Next()
	if save.Token != js_lexer.TPunct || save.Raw() != "{" {
		return
	}
	p.advance()
	p.skipBraceBlock()
}

// rawClauseEntry is one "name", "name as alias" or "type name as alias"
// entry inside a "{ ... }" import/export clause, before it's mapped onto
// js_ast.ClauseItem's Imported/Local convention.
type rawClauseEntry struct {
	first     string
	firstLoc  logger.Loc
	second    string
	secondLoc logger.Loc
	hasAs     bool
	isType    bool
}

func toClauseItem(e rawClauseEntry, typeOnlyModifier bool) js_ast.ClauseItem {
	local, localLoc := e.first, e.firstLoc
	if e.hasAs {
		local, localLoc = e.second, e.secondLoc
	}
	return js_ast.ClauseItem{
		Imported:    e.first,
		ImportedLoc: e.firstLoc,
		Local:       local,
		LocalLoc:    localLoc,
		IsTypeOnly:  e.isType || typeOnlyModifier,
	}
}

// parseBraceList parses a "{ A, B as C, type D }" clause shared by both
// import and export declarations. It must be called with the lexer sitting
// on the opening brace, and leaves it just past the closing brace.
func (p *parser) parseBraceList() []rawClauseEntry {
	p.advance() // consume '{'
	var entries []rawClauseEntry

	for !(p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "}") {
		if p.lex.Token == js_lexer.TEndOfFile {
			p.fail(p.lex.Loc(), "Unterminated clause list")
		}

		isType := false
		if p.lex.IsIdent("type") {
			save := p.lex
			save.Next()
			if save.Token == js_lexer.TIdent && save.Identifier != "as" {
				isType = true
				p.advance()
			}
		}

		p.expectToken(js_lexer.TIdent)
		first, firstLoc := p.lex.Identifier, p.lex.Loc()
		p.advance()

		entry := rawClauseEntry{first: first, firstLoc: firstLoc, isType: isType}
		if p.lex.IsIdent("as") {
			p.advance()
			p.expectToken(js_lexer.TIdent)
			entry.second, entry.secondLoc = p.lex.Identifier, p.lex.Loc()
			entry.hasAs = true
			p.advance()
		}
		entries = append(entries, entry)

		if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "," {
			p.advance()
			continue
		}
		break
	}

	p.expectToken(js_lexer.TPunct)
	if p.lex.Raw() != "}" {
		p.fail(p.lex.Loc(), "Expected \"}\"")
	}
	p.advance()
	return entries
}

// parseImport parses every shape of import declaration. The lexer must be
// sitting on the "import" keyword.
func (p *parser) parseImport() js_ast.S {
	stmt := &js_ast.SImport{}
	p.advance() // consume 'import'

	if p.lex.IsIdent("type") {
		save := p.lex
		save.Next()
		isFromOrComma := (save.Token == js_lexer.TIdent && save.Identifier == "from") ||
			(save.Token == js_lexer.TPunct && save.Raw() == ",")
		if !isFromOrComma {
			stmt.IsTypeOnly = true
			p.advance()
		}
	}

	switch {
	case p.lex.Token == js_lexer.TString:
		// Side-effect import: "import 'path';" — no bindings, no "from".
		stmt.Source, stmt.SourceLoc = p.lex.StringValue, p.lex.Loc()
		p.advance()
		p.skipImportAttributes()
		p.consumeOptionalSemi()
		return stmt

	case p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "*":
		p.advance()
		p.expectIdentText("as")
		p.advance()
		p.expectToken(js_lexer.TIdent)
		name, loc := p.lex.Identifier, p.lex.Loc()
		p.advance()
		stmt.StarName = &js_ast.ClauseItem{Local: name, LocalLoc: loc}

	case p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "{":
		entries := p.parseBraceList()
		stmt.Items = make([]js_ast.ClauseItem, len(entries))
		for i, e := range entries {
			stmt.Items[i] = toClauseItem(e, stmt.IsTypeOnly)
		}

	case p.lex.Token == js_lexer.TIdent:
		name, loc := p.lex.Identifier, p.lex.Loc()
		stmt.DefaultName = &js_ast.ClauseItem{Local: name, LocalLoc: loc}
		p.advance()

		if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "," {
			p.advance()
			switch {
			case p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "*":
				p.advance()
				p.expectIdentText("as")
				p.advance()
				p.expectToken(js_lexer.TIdent)
				nsName, nsLoc := p.lex.Identifier, p.lex.Loc()
				p.advance()
				stmt.StarName = &js_ast.ClauseItem{Local: nsName, LocalLoc: nsLoc}

			case p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "{":
				entries := p.parseBraceList()
				stmt.Items = make([]js_ast.ClauseItem, len(entries))
				for i, e := range entries {
					stmt.Items[i] = toClauseItem(e, stmt.IsTypeOnly)
				}

			default:
				p.fail(p.lex.Loc(), "Expected \"*\" or \"{\" after \",\"")
			}
		}

	default:
		p.fail(p.lex.Loc(), "Unexpected token in import declaration")
	}

	p.expectIdentText("from")
	p.advance()
	p.expectToken(js_lexer.TString)
	stmt.Source, stmt.SourceLoc = p.lex.StringValue, p.lex.Loc()
	p.advance()
	p.skipImportAttributes()
	p.consumeOptionalSemi()
	return stmt
}

// parseExport parses every export form a barrel file or host file can
// contain. The lexer must be sitting on the "export" keyword.
func (p *parser) parseExport() js_ast.S {
	p.advance() // consume 'export'

	isTypeOnly := false
	if p.lex.IsIdent("type") {
		save := p.lex
		save.Next()
		if save.Token == js_lexer.TPunct && (save.Raw() == "{" || save.Raw() == "*") {
			isTypeOnly = true
			p.advance()
		}
	}

	if p.lex.IsIdent("default") {
		p.advance()
		p.skipToNextBoundary()
		return &js_ast.SExportDefault{}
	}

	if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "*" {
		p.advance()
		var alias *js_ast.ClauseItem
		if p.lex.IsIdent("as") {
			p.advance()
			p.expectToken(js_lexer.TIdent)
			name, loc := p.lex.Identifier, p.lex.Loc()
			p.advance()
			alias = &js_ast.ClauseItem{Local: name, LocalLoc: loc}
		}
		p.expectIdentText("from")
		p.advance()
		p.expectToken(js_lexer.TString)
		source, sourceLoc := p.lex.StringValue, p.lex.Loc()
		p.advance()
		p.skipImportAttributes()
		p.consumeOptionalSemi()
		return &js_ast.SExportStar{Alias: alias, Source: source, SourceLoc: sourceLoc}
	}

	if p.lex.Token == js_lexer.TPunct && p.lex.Raw() == "{" {
		entries := p.parseBraceList()
		items := make([]js_ast.ClauseItem, len(entries))
		for i, e := range entries {
			items[i] = toClauseItem(e, isTypeOnly)
		}

		if p.lex.IsIdent("from") {
			p.advance()
			p.expectToken(js_lexer.TString)
			source, sourceLoc := p.lex.StringValue, p.lex.Loc()
			p.advance()
			p.skipImportAttributes()
			p.consumeOptionalSemi()
			return &js_ast.SExportFrom{Items: items, IsTypeOnly: isTypeOnly, Source: source, SourceLoc: sourceLoc}
		}

		p.consumeOptionalSemi()
		return &js_ast.SExportClause{Items: items}
	}

	if p.lex.Token == js_lexer.TIdent {
		kind := p.lex.Identifier
		p.advance()
		p.skipToNextBoundary()
		return &js_ast.SLocalExport{Kind: kind}
	}

	// "export = Foo;" and similarly exotic forms the barrel validator has no
	// special case for anyway; keep the text and let validation reject it.
	p.skipToNextBoundary()
	return &js_ast.SOther{}
}
