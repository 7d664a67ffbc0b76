package transform

import (
	"strings"

	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/resolver"
)

// candidate is what resolveSpecifier hands back to the driver: either
// nothing (the specifier isn't a barrel at all, leave the import alone) or
// an absolute, sandbox-checked path that matched one of cfg.Patterns.
type candidate struct {
	absPath string
}

// resolveSpecifier turns an import specifier written in some host file
// into a candidate barrel path. importerAbsPath is the absolute path of
// the file containing the import; importerDir is its directory, passed
// separately because callers already have it and computing it twice per
// import is wasted work.
//
// Three cases, in order:
//  1. An applicable, pattern-matching alias: try each of its templates in
//     order, first existing file wins.
//  2. No alias matches, but the specifier is itself an absolute or
//     relative path: normalise it and accept it if it matches a
//     configured barrel pattern.
//  3. Neither: a bare package specifier with no alias — not a candidate,
//     passed through unchanged.
func resolveSpecifier(
	cfg *config.Config,
	cache *Cache,
	fileSystem fs.FS,
	specifier string,
	importerAbsPath string,
	importerDir string,
) (candidate, *Diagnostic) {
	matched := false

	for _, alias := range cfg.Aliases {
		if !alias.AppliesTo(importerAbsPath) {
			continue
		}
		captures, ok := alias.Pattern.Match(specifier)
		if !ok {
			continue
		}
		matched = true

		for _, template := range alias.Paths {
			substituted := resolver.Substitute(template, captures)
			abs, insideSandbox := resolver.Normalise(fileSystem, cfg.Symlinks, substituted, fileSystem.Cwd(), fileSystem.Cwd())
			if !insideSandbox {
				return candidate{}, errInvalidFilePath(specifier)
			}
			if cache.FileExists(fileSystem, abs) {
				return candidate{absPath: abs}, nil
			}
		}
		// This alias matched but none of its templates resolved to an
		// existing file. Treated as fatal regardless of whether a later
		// alias in configuration order might also match — the user clearly
		// intended this specifier to be an alias.
		break
	}

	if matched {
		return candidate{}, errBarrelFileNotFound(specifier)
	}

	if isPathSpecifier(specifier) {
		anchor := importerDir
		if fileSystem.IsAbs(specifier) {
			anchor = fileSystem.Cwd()
		}
		abs, insideSandbox := resolver.Normalise(fileSystem, cfg.Symlinks, specifier, anchor, fileSystem.Cwd())
		if !insideSandbox {
			return candidate{}, errInvalidFilePath(specifier)
		}
		if cfg.IsBarrelPath(cwdRelative(fileSystem, abs)) {
			return candidate{absPath: abs}, nil
		}
		return candidate{}, nil
	}

	// A bare package specifier with no alias match: not a candidate at all.
	return candidate{}, nil
}

// isPathSpecifier reports whether specifier is written as an absolute or
// relative path (as opposed to a bare package name like "react" or an
// alias prefix that just happened not to match anything).
func isPathSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, "/") || strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// cwdRelative renders an in-sandbox absolute path the way configured
// patterns are written: relative to the working directory, forward
// slashes only. Callers only ever pass a path Normalise has already
// confirmed is inside fileSystem.Cwd(), so the Rel call here cannot fail.
func cwdRelative(fileSystem fs.FS, abs string) string {
	rel, ok := fileSystem.Rel(fileSystem.Cwd(), abs)
	if !ok {
		return abs
	}
	return strings.ReplaceAll(rel, "\\", "/")
}
