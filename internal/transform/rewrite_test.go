package transform

import (
	"testing"

	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/js_ast"
)

func TestRewriteImportGroupsBySourceInBarrelExportOrder(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { Button } from './components/Button'; export { select } from './model/selectors';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()
	descriptor, failure, err := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if err != nil || failure != nil {
		t.Fatalf("unexpected load problem: err=%v failure=%v", err, failure)
	}

	imp := &js_ast.SImport{Items: []js_ast.ClauseItem{
		{Imported: "Button", Local: "Button"},
		{Imported: "select", Local: "select"},
		{Imported: "X", Local: "X", IsTypeOnly: true},
	}}

	stmts, diagErr := rewriteImport(cfg, cache, fileSystem, descriptor, imp, "/repo/src/pages/test", "#features/some")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 replacement statements, got %d: %v", len(stmts), stmts)
	}
	if stmts[0].Raw != `import { Button } from "../../features/some/components/Button";` {
		t.Fatalf("unexpected first statement: %q", stmts[0].Raw)
	}
	if stmts[1].Raw != `import { select } from "../../features/some/model/selectors";` {
		t.Fatalf("unexpected second statement: %q", stmts[1].Raw)
	}
}

func TestRewriteImportPreservesRenameSemantics(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { B as A } from './b';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()
	descriptor, failure, err := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if err != nil || failure != nil {
		t.Fatalf("unexpected load problem: err=%v failure=%v", err, failure)
	}

	imp := &js_ast.SImport{Items: []js_ast.ClauseItem{{Imported: "A", Local: "X"}}}
	stmts, diagErr := rewriteImport(cfg, cache, fileSystem, descriptor, imp, "/repo/src/features/some", "#barrel")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if len(stmts) != 1 || stmts[0].Raw != `import { B as X } from "./b";` {
		t.Fatalf("unexpected statement: %v", stmts)
	}
}

func TestRewriteImportConvertsDefaultSourceToDefaultImport(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { default as Input } from './input';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()
	descriptor, failure, err := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if err != nil || failure != nil {
		t.Fatalf("unexpected load problem: err=%v failure=%v", err, failure)
	}

	imp := &js_ast.SImport{Items: []js_ast.ClauseItem{{Imported: "Input", Local: "Input"}}}
	stmts, diagErr := rewriteImport(cfg, cache, fileSystem, descriptor, imp, "/repo/src/features/some", "#barrel")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if len(stmts) != 1 || stmts[0].Raw != `import Input from "./input";` {
		t.Fatalf("unexpected statement: %v", stmts)
	}
}

func TestRewriteImportMergesMultipleSpecifiersFromSameSource(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { default as Button, Variant } from './button';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()
	descriptor, failure, err := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if err != nil || failure != nil {
		t.Fatalf("unexpected load problem: err=%v failure=%v", err, failure)
	}

	imp := &js_ast.SImport{Items: []js_ast.ClauseItem{
		{Imported: "Button", Local: "Button"},
		{Imported: "Variant", Local: "Variant"},
	}}
	stmts, diagErr := rewriteImport(cfg, cache, fileSystem, descriptor, imp, "/repo/src/features/some", "#barrel")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected a single merged statement, got %d: %v", len(stmts), stmts)
	}
	if stmts[0].Raw != `import Button, { Variant } from "./button";` {
		t.Fatalf("unexpected statement: %q", stmts[0].Raw)
	}
}

func TestRewriteImportNamespaceImportIsUnsupported(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { Button } from './button';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()
	descriptor, failure, err := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if err != nil || failure != nil {
		t.Fatalf("unexpected load problem: err=%v failure=%v", err, failure)
	}

	imp := &js_ast.SImport{StarName: &js_ast.ClauseItem{Local: "ns"}}
	_, diagErr := rewriteImport(cfg, cache, fileSystem, descriptor, imp, "/repo/src/features/some", "#barrel")
	if diagErr == nil {
		t.Fatalf("expected a diagnostic for a namespace import")
	}
}

func TestRewriteImportUnresolvedExportsAreAggregated(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { Button } from './button';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()
	descriptor, failure, err := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if err != nil || failure != nil {
		t.Fatalf("unexpected load problem: err=%v failure=%v", err, failure)
	}

	imp := &js_ast.SImport{Items: []js_ast.ClauseItem{
		{Imported: "Missing1", Local: "Missing1"},
		{Imported: "Missing2", Local: "Missing2"},
	}}
	_, diagErr := rewriteImport(cfg, cache, fileSystem, descriptor, imp, "/repo/src/features/some", "#barrel")
	if diagErr == nil {
		t.Fatalf("expected a diagnostic for unresolved exports")
	}
}
