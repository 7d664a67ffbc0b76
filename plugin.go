// Package barrelsplit is the compiler-plugin entry point: given a
// configuration value and a sandboxed filesystem, it exposes a single
// Transform call that rewrites barrel imports in one parsed module in
// place. Everything else — parsing, the AST shape understood, the
// filesystem facade, path matching, and the transform's internal state
// machine — lives in internal/ and is wired together here.
package barrelsplit

import (
	"github.com/barrelsplit/barrelsplit/internal/config"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/js_ast"
	"github.com/barrelsplit/barrelsplit/internal/js_parser"
	"github.com/barrelsplit/barrelsplit/internal/logger"
	"github.com/barrelsplit/barrelsplit/internal/transform"
)

// Plugin is one configured instance of the barrel rewriter, constructed
// once per host compiler invocation and reused across every source file it
// transforms.
type Plugin struct {
	cfg    *config.Config
	driver *transform.Driver
	fs     fs.FS
}

// NewPlugin validates and compiles raw into a Config and returns a Plugin
// ready to transform files against fileSystem. Every fallible setup step —
// glob compilation, alias arity checks, symlink normalisation, diagnostic
// mode parsing — runs here, so a Plugin either starts fully valid or is
// never created.
func NewPlugin(raw config.Raw, fileSystem fs.FS) (*Plugin, error) {
	cfg, err := config.New(raw, fileSystem)
	if err != nil {
		return nil, err
	}
	return &Plugin{cfg: cfg, driver: transform.NewDriver(cfg), fs: fileSystem}, nil
}

// ParseAndTransform reads, parses and rewrites the file at absPath, and
// reports any diagnostics raised along the way to log. It returns the
// parsed (and now rewritten) module, or a nil module if the file could not
// be read or parsed at all.
func (p *Plugin) ParseAndTransform(log logger.Log, absPath string) *js_ast.File {
	contents, err := p.fs.ReadFile(absPath)
	if err != nil {
		log.AddMsg(logger.Msg{Kind: logger.Error, ID: logger.MsgID_FileRead,
			Text: "Could not read " + absPath + ": " + err.Error()})
		return nil
	}

	source := logger.Source{KeyPath: logger.Path{Text: absPath}, PrettyPath: absPath, Contents: contents}
	file := js_parser.Parse(log, source)
	if log.HasErrors() {
		return nil
	}

	p.Transform(log, file, absPath)
	return file
}

// Transform rewrites the barrel imports of an already-parsed file in
// place. This is the seam a host compiler's own visitor framework would
// call directly if it already owns parsing.
func (p *Plugin) Transform(log logger.Log, file *js_ast.File, absPath string) {
	p.driver.Transform(log, p.fs, file, absPath)
}

// Print concatenates a transformed file's statements back into source
// text. Reprinting every Stmt.Raw in order reproduces the file exactly
// when nothing was rewritten, and reflects the splice otherwise.
func Print(file *js_ast.File) string {
	var out []byte
	for _, stmt := range file.Stmts {
		out = append(out, stmt.Raw...)
	}
	return string(out)
}
