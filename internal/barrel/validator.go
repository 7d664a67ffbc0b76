package barrel

import (
	"strings"

	"github.com/barrelsplit/barrelsplit/internal/js_ast"
	"github.com/barrelsplit/barrelsplit/internal/logger"
)

// ValidateBarrel checks that every top-level statement in file is a
// re-export-from-source declaration, and builds the Descriptor those
// statements describe. Exactly one shape is allowed: "export { A, default
// as B } from '...'", optionally marked type-only. Anything else — a
// default export, a wildcard or namespace re-export, a local declaration
// marked for export, a bare "export { A }" with no source, or any
// non-export statement at all — makes the whole file an invalid barrel.
func ValidateBarrel(absPath string, file *js_ast.File) (*Descriptor, Failure) {
	var exports []ReExport

	for _, stmt := range file.Stmts {
		switch data := stmt.Data.(type) {
		case *js_ast.SExportFrom:
			for _, item := range data.Items {
				exports = append(exports, ReExport{
					ExportedName:    item.Local,
					OriginalName:    item.Imported,
					Source:          data.Source,
					IsDefaultSource: item.Imported == "default",
					IsTypeOnly:      data.IsTypeOnly || item.IsTypeOnly,
					Range:           stmt.Range,
				})
			}

		case *js_ast.SOther:
			// The only SOther a valid barrel can contain is trivia the parser
			// had nowhere else to attach: a whole-file comment/whitespace-only
			// "statement" produced when there were no real statements at all.
			// Any other SOther is a real, disallowed statement.
			if strings.TrimSpace(stmt.Raw) == "" {
				continue
			}
			return nil, invalidBarrel("may only contain \"export { ... } from \"...\"\" declarations")

		case *js_ast.SExportDefault:
			return nil, invalidBarrel("may not contain a default export")

		case *js_ast.SExportStar:
			if data.Alias != nil {
				return nil, invalidBarrel("may not contain a namespace re-export (\"export * as ... from ...\")")
			}
			return nil, invalidBarrel("may not contain a wildcard re-export (\"export * from ...\")")

		case *js_ast.SLocalExport:
			return nil, invalidBarrel("may not export a local declaration (\"export " + data.Kind + " ...\")")

		case *js_ast.SExportClause:
			return nil, invalidBarrel("may not contain a re-export with no source module")

		case *js_ast.SImport:
			return nil, invalidBarrel("may not itself import anything")

		default:
			return nil, invalidBarrel("may only contain \"export { ... } from \"...\"\" declarations")
		}
	}

	return newDescriptor(absPath, exports), nil
}

func invalidBarrel(text string) *failure {
	return &failure{msgID: logger.MsgID_InvalidBarrelFile, text: "Invalid barrel file: " + text}
}
