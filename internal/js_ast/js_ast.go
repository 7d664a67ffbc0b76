// Package js_ast defines the slice of the JS/TS module grammar the barrel
// rewriter actually needs to understand: import declarations and the
// handful of export forms a barrel file is allowed to contain. Every other
// top-level construct is represented opaquely by SOther and is never
// interpreted, only ever re-emitted byte-for-byte.
//
// This is deliberately not a general-purpose JS AST. Scope expressions,
// class bodies, JSX, decorators and TypeScript type syntax are someone
// else's problem: the host compiler owns the real AST and hands the barrel
// rewriter only the statements it asks to rewrite.
package js_ast

import "github.com/barrelsplit/barrelsplit/internal/logger"

// S is the marker interface implemented by every statement payload, mirroring
// the tagged-union style used for the host compiler's real AST.
type S interface{ isStmt() }

// Stmt pairs a statement's semantic payload (nil for anything the parser
// didn't need to understand) with its exact source span, so unrecognised or
// unrewritten statements can be re-emitted verbatim.
type Stmt struct {
	Range logger.Range
	Raw   string
	Data  S

	// CoreStart is where the statement's own tokens begin, which is always
	// >= Range.Loc.Start: leading comments and blank lines between the
	// previous statement and this one are folded into this statement's Raw
	// as a prefix so reprinting never drops them, but a rewriter that wants
	// to replace just the declaration itself (not its leading trivia) needs
	// to know where that prefix ends.
	CoreStart logger.Loc
}

// ClauseItem is one binding inside an import/export list:
//
//	import { Foo as Bar } from "..."   Imported="Foo" Local="Bar"
//	export { Foo as Bar } from "..."   Imported="Foo" Local="Bar" (Bar is the externally visible name)
//
// The two names coincide when there is no "as" clause.
type ClauseItem struct {
	// Imported is the name as it exists on the other side of "from": the
	// original export name for an import, the original local/default name
	// for a re-export.
	Imported string
	ImportedLoc logger.Loc

	// Local is the name bound in this file: the local binding for an
	// import, the externally visible alias for a re-export.
	Local    string
	LocalLoc logger.Loc

	IsTypeOnly bool
}

// SImport represents every shape of import declaration:
//
//	import 'path'
//	import Default from 'path'
//	import { A, B as C } from 'path'
//	import * as ns from 'path'
//	import Default, { A } from 'path'
//	import Default, * as ns from 'path'
//	import type { A } from 'path'   (IsTypeOnly)
type SImport struct {
	DefaultName *ClauseItem // Local only; Imported is unused
	Items       []ClauseItem
	StarName    *ClauseItem // namespace binding; Local only

	IsTypeOnly bool

	Source    string
	SourceLoc logger.Loc
}

// SExportClause is "export { A, B as C };" with no source module. Barrels
// never allow this form (it's a pure local rebinding), but the parser still
// needs to recognise it in order to produce a useful diagnostic.
type SExportClause struct {
	Items []ClauseItem
}

// SExportFrom is "export { A, B as C } from 'path';", the only re-export
// form a valid barrel entry may use. Imported is the name bound in the
// source module ("default" for `export { default as X } from ...`); Local
// is the name the barrel exposes under.
type SExportFrom struct {
	Items      []ClauseItem
	IsTypeOnly bool

	Source    string
	SourceLoc logger.Loc
}

// SExportStar is "export * from 'path';" or "export * as ns from 'path';".
// Both forms are rejected by the barrel validator.
type SExportStar struct {
	Alias     *ClauseItem // non-nil for "export * as ns from ..."
	Source    string
	SourceLoc logger.Loc
}

// SExportDefault is "export default ...;". Its payload is never inspected;
// its mere presence in a barrel is what matters.
type SExportDefault struct{}

// SLocalExport is a local declaration marked for export, e.g.
// "export const x = 1;", "export function f() {}", "export class C {}".
// Kind is the leading keyword, kept only for diagnostic text.
type SLocalExport struct {
	Kind string
}

// SOther is any statement the barrel rewriter doesn't need to look inside:
// every statement in a non-barrel host file that isn't itself an import, and
// every statement rejected outright by barrel validation (imports inside a
// barrel, plain expressions, control flow, etc). Its Stmt.Raw carries the
// exact source text, which is all that's ever needed for it.
type SOther struct{}

func (*SImport) isStmt()        {}
func (*SExportClause) isStmt()  {}
func (*SExportFrom) isStmt()    {}
func (*SExportStar) isStmt()    {}
func (*SExportDefault) isStmt() {}
func (*SLocalExport) isStmt()   {}
func (*SOther) isStmt()         {}

// File is a parsed module: its source plus an ordered list of top-level
// statements. Reprinting every Stmt.Raw in order always reproduces Contents
// byte-for-byte; that invariant is what lets the rewriter touch only the
// statements it understands and leave everything else untouched.
type File struct {
	Source logger.Source
	Stmts  []Stmt
}
