package transform

import (
	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/js_ast"
	"github.com/barrelsplit/barrelsplit/internal/logger"
	"github.com/barrelsplit/barrelsplit/internal/resolver"
)

// Driver is the transform driver: it owns one Cache for the lifetime of the
// plugin instance and applies the alias engine, barrel cache, re-export
// resolver, import rewriter and diagnostic policy to every import
// declaration of each file it's asked to transform.
type Driver struct {
	cfg   *config.Config
	cache *Cache
}

// NewDriver creates a Driver bound to cfg, with its own barrel cache. A
// Driver is reusable across many files; nothing about it is per-file state.
func NewDriver(cfg *config.Config) *Driver {
	return &Driver{cfg: cfg, cache: NewCache()}
}

// Transform rewrites every barrel import in file in place, reporting
// warnings and the one fatal error (if any) to log. A fatal diagnostic
// stops processing the remaining statements of this file — per the host
// contract the whole compilation is then aborted, so statements after the
// failing import are left exactly as the parser produced them rather than
// half-rewritten.
func (d *Driver) Transform(log logger.Log, fileSystem fs.FS, file *js_ast.File, absPath string) {
	cwd := fileSystem.Cwd()
	if cwd == "" || absPath == "" {
		log.AddMsg(logger.Msg{Kind: logger.Error, ID: logger.MsgID_InvalidEnv,
			Text: "Missing current working directory or source file path"})
		return
	}

	hostAbs, insideSandbox := resolver.Normalise(fileSystem, d.cfg.Symlinks, absPath, fileSystem.Dir(absPath), cwd)
	if !insideSandbox {
		// The source file itself lies outside CWD: the whole transform is a
		// no-op on this file, not an error.
		return
	}
	hostDir := fileSystem.Dir(hostAbs)

	out := make([]js_ast.Stmt, 0, len(file.Stmts))
	for i, stmt := range file.Stmts {
		imp, ok := stmt.Data.(*js_ast.SImport)
		if !ok {
			out = append(out, stmt)
			continue
		}

		replacement, diagErr := d.transformImport(fileSystem, imp, hostDir, hostAbs, stmt)
		if diagErr == nil {
			out = append(out, replacement...)
			continue
		}

		mode, governed := diagnosticMode(d.cfg, diagErr.MsgID)
		if !governed || mode == config.ModeError {
			log.AddRangeErrorWithID(&file.Source, stmt.Range, diagErr.MsgID, diagErr.Text)
			out = append(out, file.Stmts[i:]...)
			file.Stmts = out
			return
		}
		if mode == config.ModeWarn {
			log.AddRangeWarningWithID(&file.Source, stmt.Range, diagErr.MsgID, diagErr.Text)
		}
		out = append(out, stmt)
	}

	file.Stmts = out
}

// diagnosticMode reports which of the two softenable failure classes id
// belongs to, and the mode configured for it. Every other MsgID is
// unconditionally fatal (governed == false).
func diagnosticMode(cfg *config.Config, id logger.MsgID) (mode config.DiagnosticMode, governed bool) {
	switch id {
	case logger.MsgID_NoNamespaceImports:
		return cfg.UnsupportedImportMode, true
	case logger.MsgID_InvalidBarrelFile:
		return cfg.InvalidBarrelMode, true
	default:
		return config.ModeError, false
	}
}

// transformImport runs Classify → Resolve → Validate → Rewrite for one
// import declaration. A nil Diagnostic with a nil replacement slice never
// happens: either the import passes through unchanged (len-1 slice holding
// the original statement), is fully rewritten (zero or more replacement
// statements), or a Diagnostic is returned instead.
func (d *Driver) transformImport(
	fileSystem fs.FS,
	imp *js_ast.SImport,
	hostDir string,
	hostAbs string,
	original js_ast.Stmt,
) ([]js_ast.Stmt, *Diagnostic) {
	candidate, diagErr := resolveSpecifier(d.cfg, d.cache, fileSystem, imp.Source, hostAbs, hostDir)
	if diagErr != nil {
		return nil, diagErr
	}
	if candidate.absPath == "" {
		// Not a candidate barrel import at all: untouched.
		return []js_ast.Stmt{original}, nil
	}

	descriptor, failure, err := d.cache.Load(fileSystem, candidate.absPath)
	if err != nil {
		return nil, err.(*Diagnostic)
	}
	if failure != nil {
		return nil, fromBarrelFailure(failure)
	}

	stmts, diagErr := rewriteImport(d.cfg, d.cache, fileSystem, descriptor, imp, hostDir, imp.Source)
	if diagErr != nil {
		return nil, diagErr
	}
	return withOriginalTrivia(original, stmts), nil
}

// withOriginalTrivia reattaches the leading comments/blank-lines trivia
// that preceded the original import (folded into original.Raw ahead of
// original.CoreStart) onto the first replacement statement, and makes sure
// every replacement ends with a newline so splicing several of them in
// place of one import still prints one declaration per line. An empty
// stmts (every specifier was type-only) drops the trivia along with the
// import it introduced.
func withOriginalTrivia(original js_ast.Stmt, stmts []js_ast.Stmt) []js_ast.Stmt {
	if len(stmts) == 0 {
		return stmts
	}
	trivia := original.Raw[:original.CoreStart.Start-original.Range.Loc.Start]
	out := make([]js_ast.Stmt, len(stmts))
	copy(out, stmts)
	out[0].Raw = trivia + out[0].Raw
	for i := range out {
		out[i].Raw += "\n"
	}
	return out
}
