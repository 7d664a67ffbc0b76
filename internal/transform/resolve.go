package transform

import (
	"strings"

	"github.com/barrelsplit/barrelsplit/internal/barrel"
	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/resolver"
)

// resolved is one imported name's terminal resolution: the module to
// import from and the name it's bound under there, plus whether that
// binding is the terminal module's default export.
type resolved struct {
	source          string // absolute path, or verbatim out-of-sandbox/package text
	originalName    string
	isDefaultSource bool
}

// resolveChain follows exportedName through descriptor, and through any
// further barrels the chain passes through, until it terminates in a
// module this package doesn't also recognise as a barrel.
func resolveChain(
	cfg *config.Config,
	cache *Cache,
	fileSystem fs.FS,
	descriptor *barrel.Descriptor,
	exportedName string,
) (resolved, *Diagnostic) {
	visited := map[string]bool{descriptor.AbsPath: true}
	return resolveChainFrom(cfg, cache, fileSystem, descriptor, exportedName, visited)
}

func resolveChainFrom(
	cfg *config.Config,
	cache *Cache,
	fileSystem fs.FS,
	descriptor *barrel.Descriptor,
	exportedName string,
	visited map[string]bool,
) (resolved, *Diagnostic) {
	entry, ok := descriptor.Find(exportedName)
	if !ok {
		return resolved{}, errUnresolvedExports(descriptor.AbsPath, []string{exportedName})
	}

	// Bare package specifiers ("react", "@scope/pkg") are never resolved
	// further.
	if !strings.HasPrefix(entry.Source, ".") && !fileSystem.IsAbs(entry.Source) {
		return resolved{source: entry.Source, originalName: entry.OriginalName, isDefaultSource: entry.IsDefaultSource}, nil
	}

	barrelDir := fileSystem.Dir(descriptor.AbsPath)
	anchor := barrelDir
	if fileSystem.IsAbs(entry.Source) {
		anchor = fileSystem.Cwd()
	}

	abs, insideSandbox := resolver.Normalise(fileSystem, cfg.Symlinks, entry.Source, anchor, fileSystem.Cwd())
	if !insideSandbox {
		// Out-of-sandbox sources terminate the chain and are emitted
		// verbatim rather than followed through the symlink map.
		return resolved{source: entry.Source, originalName: entry.OriginalName, isDefaultSource: entry.IsDefaultSource}, nil
	}

	if !cfg.IsBarrelPath(cwdRelative(fileSystem, abs)) {
		return resolved{source: abs, originalName: entry.OriginalName, isDefaultSource: entry.IsDefaultSource}, nil
	}

	if visited[abs] {
		return resolved{}, errCyclicBarrel(abs)
	}
	visited[abs] = true

	nested, failure, err := cache.Load(fileSystem, abs)
	if err != nil {
		return resolved{}, err.(*Diagnostic)
	}
	if failure != nil {
		return resolved{}, fromBarrelFailure(failure)
	}

	return resolveChainFrom(cfg, cache, fileSystem, nested, entry.OriginalName, visited)
}
