package transform

import (
	"sort"
	"strings"

	"github.com/barrelsplit/barrelsplit/internal/barrel"
	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/helpers"
	"github.com/barrelsplit/barrelsplit/internal/js_ast"
)

// namedItem is one "name" or "originalName as name" entry in an emitted
// import's brace clause.
type namedItem struct {
	local        string
	originalName string // "" (or equal to local) omits the "as" clause
}

// group collects every specifier this rewrite will emit against a single
// resolved source module. A source can receive both a default and named
// specifiers if the barrel re-exports both from the same underlying file,
// so a group is not always one or the other.
type group struct {
	source      string
	defaultName string // "" if this source has no default specifier
	named       []namedItem
	firstRank   int // index into descriptor.Exports of the earliest export that fed this group
}

// rewriteImport implements the import rewriter: classifies an import,
// resolves every named specifier through the re-export resolver, groups
// the replacement specifiers by resolved source module in barrel-export
// order (not the host import's own specifier order), and prints the
// replacement import statements. It returns the statements that should
// replace imp in the host file's statement list; an empty, non-nil slice
// means the import disappears entirely (every specifier was type-only). A
// non-nil Diagnostic means the import could not be rewritten at all.
func rewriteImport(
	cfg *config.Config,
	cache *Cache,
	fileSystem fs.FS,
	descriptor *barrel.Descriptor,
	imp *js_ast.SImport,
	hostDir string,
	specifier string,
) ([]js_ast.Stmt, *Diagnostic) {
	if imp.StarName != nil {
		return nil, errNoNamespaceImports(specifier)
	}

	var groups []*group
	index := make(map[string]int)
	var missing []string

	emit := func(source string, item namedItem, isDefault bool, rank int) {
		i, ok := index[source]
		if !ok {
			i = len(groups)
			index[source] = i
			groups = append(groups, &group{source: source, firstRank: rank})
		}
		if rank < groups[i].firstRank {
			groups[i].firstRank = rank
		}
		if isDefault {
			groups[i].defaultName = item.local
		} else {
			groups[i].named = append(groups[i].named, item)
		}
	}

	resolveOne := func(importedName, localName string, isTypeOnly bool) *Diagnostic {
		if isTypeOnly {
			return nil
		}
		rank, ok := descriptor.IndexOf(importedName)
		if !ok {
			missing = append(missing, importedName)
			return nil
		}
		r, diagErr := resolveChain(cfg, cache, fileSystem, descriptor, importedName)
		if diagErr != nil {
			return diagErr
		}
		source := relativiseSource(fileSystem, hostDir, r.source)
		if r.isDefaultSource {
			emit(source, namedItem{local: localName}, true, rank)
		} else {
			emit(source, namedItem{local: localName, originalName: r.originalName}, false, rank)
		}
		return nil
	}

	if imp.DefaultName != nil {
		if diagErr := resolveOne("default", imp.DefaultName.Local, imp.IsTypeOnly); diagErr != nil {
			return nil, diagErr
		}
	}
	for _, item := range imp.Items {
		if diagErr := resolveOne(item.Imported, item.Local, imp.IsTypeOnly || item.IsTypeOnly); diagErr != nil {
			return nil, diagErr
		}
	}

	if len(missing) > 0 {
		return nil, errUnresolvedExports(descriptor.AbsPath, missing)
	}

	sort.SliceStable(groups, func(a, b int) bool { return groups[a].firstRank < groups[b].firstRank })

	stmts := make([]js_ast.Stmt, 0, len(groups))
	for _, g := range groups {
		stmts = append(stmts, js_ast.Stmt{Raw: printGroup(g), Data: &js_ast.SOther{}})
	}
	return stmts, nil
}

// relativiseSource renders a resolved source the way the host file should
// see it: relative to hostDir when the resolver produced an absolute
// sandbox path, or verbatim when resolveChain already left it as a bare
// package specifier or an out-of-sandbox path.
func relativiseSource(fileSystem fs.FS, hostDir string, source string) string {
	if !fileSystem.IsAbs(source) {
		return source
	}
	rel, ok := fileSystem.Rel(hostDir, source)
	if !ok {
		return source
	}
	rel = strings.ReplaceAll(rel, "\\", "/")
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

func printGroup(g *group) string {
	var sb strings.Builder
	sb.WriteString("import ")
	wrote := false
	if g.defaultName != "" {
		sb.WriteString(g.defaultName)
		wrote = true
	}
	if len(g.named) > 0 {
		if wrote {
			sb.WriteString(", ")
		}
		sb.WriteString("{ ")
		for i, item := range g.named {
			if i > 0 {
				sb.WriteString(", ")
			}
			if item.originalName != "" && item.originalName != item.local {
				sb.WriteString(item.originalName)
				sb.WriteString(" as ")
				sb.WriteString(item.local)
			} else {
				sb.WriteString(item.local)
			}
		}
		sb.WriteString(" }")
		wrote = true
	}
	if wrote {
		sb.WriteString(" from ")
	}
	sb.Write(helpers.QuoteForJSON(g.source, true))
	sb.WriteString(";")
	return sb.String()
}
