// Package config holds the plugin-wide settings for the barrel rewriter:
// which paths look like barrels, how bare specifiers map onto them, and how
// strictly to react when a rewrite can't be completed. A Config is built
// once per plugin instantiation with New and is immutable afterwards.
package config

import (
	"fmt"

	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/logger"
	"github.com/barrelsplit/barrelsplit/internal/resolver"
)

// Error is every fallible outcome New/compileAlias can raise: a bad
// diagnostic-mode string, a malformed alias, an unresolvable alias context
// directory. All of them carry logger.MsgID_InvalidConfig so host tooling can
// match on the stable code instead of parsing the message text, matching
// how transform.Diagnostic carries a MsgID for every error raised once a
// Config is in use.
type Error struct {
	Text string
}

func (e *Error) Error() string { return e.Text }

func (e *Error) MsgID() logger.MsgID { return logger.MsgID_InvalidConfig }

func errInvalidConfig(format string, args ...interface{}) *Error {
	return &Error{Text: fmt.Sprintf(format, args...)}
}

// DiagnosticMode controls what happens when a recoverable failure class is
// hit: raise it as a hard error, downgrade it to a warning and leave the
// import untouched, or skip the import without saying anything.
type DiagnosticMode uint8

const (
	ModeError DiagnosticMode = iota
	ModeWarn
	ModeOff
)

func ParseDiagnosticMode(text string) (DiagnosticMode, bool) {
	switch text {
	case "", "error":
		return ModeError, true
	case "warn":
		return ModeWarn, true
	case "off":
		return ModeOff, true
	default:
		return 0, false
	}
}

func (m DiagnosticMode) String() string {
	switch m {
	case ModeWarn:
		return "warn"
	case ModeOff:
		return "off"
	default:
		return "error"
	}
}

// RawAlias mirrors the JSON shape of one entry in the "aliases" array before
// it has been compiled into a resolver.Alias.
type RawAlias struct {
	Pattern string   `json:"pattern"`
	Paths   []string `json:"paths"`
	Context []string `json:"context,omitempty"`
}

// Raw mirrors the JSON shape of the plugin configuration exactly as it is
// deserialised from the host's plugin-configuration transport, before any
// validation or glob compilation has happened.
type Raw struct {
	Patterns              []string   `json:"patterns"`
	Aliases               []RawAlias `json:"aliases,omitempty"`
	Symlinks              map[string]string `json:"symlinks,omitempty"`
	Debug                 bool       `json:"debug,omitempty"`
	UnsupportedImportMode string     `json:"unsupported_import_mode,omitempty"`
	InvalidBarrelMode     string     `json:"invalid_barrel_mode,omitempty"`
}

// Config is the validated, compiled form of Raw. Every field that requires
// eager work at construction time (glob compilation, arity checks, path
// normalisation) has already had that work done, so a Config can be reused
// across many source files without repeating it.
type Config struct {
	Patterns []resolver.Pattern
	Aliases  []resolver.Alias
	Symlinks resolver.SymlinkMap
	Debug    bool

	UnsupportedImportMode DiagnosticMode
	InvalidBarrelMode     DiagnosticMode
}

// New validates and compiles raw into a Config, or returns an error
// describing the first problem found. All fallible setup work (glob
// compilation, alias arity checks, symlink normalisation) happens here so
// that the first file transformed either starts from a fully valid Config
// or the plugin never installs its visitor at all.
func New(raw Raw, fileSystem fs.FS) (*Config, error) {
	patterns := make([]resolver.Pattern, 0, len(raw.Patterns))
	for _, text := range raw.Patterns {
		patterns = append(patterns, resolver.CompilePattern(text))
	}

	aliases := make([]resolver.Alias, 0, len(raw.Aliases))
	for _, rawAlias := range raw.Aliases {
		alias, err := compileAlias(rawAlias, fileSystem)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, alias)
	}

	symlinks, err := resolver.CompileSymlinkMap(raw.Symlinks, fileSystem)
	if err != nil {
		return nil, err
	}

	unsupportedImportMode, ok := ParseDiagnosticMode(raw.UnsupportedImportMode)
	if !ok {
		return nil, errInvalidConfig("invalid value %q for \"unsupported_import_mode\"", raw.UnsupportedImportMode)
	}

	invalidBarrelMode, ok := ParseDiagnosticMode(raw.InvalidBarrelMode)
	if !ok {
		return nil, errInvalidConfig("invalid value %q for \"invalid_barrel_mode\"", raw.InvalidBarrelMode)
	}

	return &Config{
		Patterns:               patterns,
		Aliases:                aliases,
		Symlinks:               symlinks,
		Debug:                  raw.Debug,
		UnsupportedImportMode:  unsupportedImportMode,
		InvalidBarrelMode:      invalidBarrelMode,
	}, nil
}

func compileAlias(raw RawAlias, fileSystem fs.FS) (resolver.Alias, error) {
	pattern := resolver.CompilePattern(raw.Pattern)

	if len(raw.Paths) == 0 {
		return resolver.Alias{}, errInvalidConfig("alias %q must declare at least one path", raw.Pattern)
	}

	for _, path := range raw.Paths {
		if resolver.CompilePattern(path).WildcardCount() != pattern.WildcardCount() {
			return resolver.Alias{}, errInvalidConfig(
				"alias %q has %d wildcard(s) but template %q has a different count", raw.Pattern, pattern.WildcardCount(), path)
		}
	}

	var context []string
	for _, dir := range raw.Context {
		abs, ok := fileSystem.Abs(dir)
		if !ok {
			return resolver.Alias{}, errInvalidConfig("could not resolve alias context directory %q", dir)
		}
		context = append(context, abs)
	}

	return resolver.Alias{
		Pattern: pattern,
		Paths:   raw.Paths,
		Context: context,
	}, nil
}

// IsBarrelPath reports whether path matches any of the configured barrel
// patterns.
func (c *Config) IsBarrelPath(path string) bool {
	for _, pattern := range c.Patterns {
		if _, ok := pattern.Match(path); ok {
			return true
		}
	}
	return false
}
