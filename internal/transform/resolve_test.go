package transform

import (
	"testing"

	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
)

func TestResolveChainTerminatesAtNonBarrelSource(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { Button } from './button';\n",
		"/repo/src/features/some/button.ts": "export function Button() {}\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()

	descriptor, failure, loadErr := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if loadErr != nil || failure != nil {
		t.Fatalf("unexpected load failure: err=%v failure=%v", loadErr, failure)
	}

	r, diagErr := resolveChain(cfg, cache, fileSystem, descriptor, "Button")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if r.source != "/repo/src/features/some/button" || r.isDefaultSource {
		t.Fatalf("unexpected resolution: %+v", r)
	}
}

func TestResolveChainFollowsNestedBarrel(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/outer/index.ts": "export { Button } from '../inner/index.ts';\n",
		"/repo/src/features/inner/index.ts": "export { Button } from './button';\n",
		"/repo/src/features/inner/button.ts": "export function Button() {}\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()

	descriptor, failure, loadErr := cache.Load(fileSystem, "/repo/src/features/outer/index.ts")
	if loadErr != nil || failure != nil {
		t.Fatalf("unexpected load failure: err=%v failure=%v", loadErr, failure)
	}

	r, diagErr := resolveChain(cfg, cache, fileSystem, descriptor, "Button")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if r.source != "/repo/src/features/inner/button.ts" {
		t.Fatalf("unexpected resolution: %+v", r)
	}
}

func TestResolveChainDetectsCycle(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/a/index.ts": "export { X } from '../b/index.ts';\n",
		"/repo/src/features/b/index.ts": "export { X } from '../a/index.ts';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()

	descriptor, failure, loadErr := cache.Load(fileSystem, "/repo/src/features/a/index.ts")
	if loadErr != nil || failure != nil {
		t.Fatalf("unexpected load failure: err=%v failure=%v", loadErr, failure)
	}

	_, diagErr := resolveChain(cfg, cache, fileSystem, descriptor, "X")
	if diagErr == nil {
		t.Fatalf("expected a cyclic-barrel diagnostic")
	}
}

func TestResolveChainBarePackageSourceTerminatesImmediately(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts": "export { useQuery } from 'react-query';\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()

	descriptor, failure, loadErr := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if loadErr != nil || failure != nil {
		t.Fatalf("unexpected load failure: err=%v failure=%v", loadErr, failure)
	}

	r, diagErr := resolveChain(cfg, cache, fileSystem, descriptor, "useQuery")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if r.source != "react-query" {
		t.Fatalf("expected the bare package specifier to be returned verbatim, got %+v", r)
	}
}

func TestResolveChainDefaultReExportIsMarked(t *testing.T) {
	fileSystem := fs.MockFS(map[string]string{
		"/repo/src/features/some/index.ts":  "export { default as Input } from './input';\n",
		"/repo/src/features/some/input.ts": "export default function Input() {}\n",
	}, "/repo")
	cfg, err := config.New(config.Raw{Patterns: []string{"src/features/*/index.ts"}}, fileSystem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := NewCache()

	descriptor, failure, loadErr := cache.Load(fileSystem, "/repo/src/features/some/index.ts")
	if loadErr != nil || failure != nil {
		t.Fatalf("unexpected load failure: err=%v failure=%v", loadErr, failure)
	}

	r, diagErr := resolveChain(cfg, cache, fileSystem, descriptor, "Input")
	if diagErr != nil {
		t.Fatalf("unexpected diagnostic: %v", diagErr)
	}
	if !r.isDefaultSource || r.source != "/repo/src/features/some/input" {
		t.Fatalf("unexpected resolution: %+v", r)
	}
}
