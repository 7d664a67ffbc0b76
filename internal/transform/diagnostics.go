// Package transform drives the rewrite of one host file's barrel imports:
// the alias engine that turns a specifier into a candidate barrel path,
// the barrel cache that loads and validates it, the re-export resolver
// that follows a name to its terminal defining module, the import
// rewriter that prints the replacement declarations, and the diagnostic
// policy that decides whether a failure aborts, warns, or is silently
// skipped. internal/barrel and internal/resolver supply the data types
// and pure matching/validation logic; this package supplies the control
// flow that turns "an import of a possible barrel" into "zero or more
// replacement imports, or a diagnostic".
package transform

import (
	"fmt"
	"strings"

	"github.com/barrelsplit/barrelsplit/internal/barrel"
	"github.com/barrelsplit/barrelsplit/internal/logger"
)

// Diagnostic is the common currency for every fallible outcome in this
// package: a stable MsgID plus rendered text, before a source location
// has been attached. The driver is the only place a Diagnostic is turned
// into a logger.Msg, because it's the only place that knows the location
// of the importing statement — every diagnostic is anchored there, never
// at the barrel file's own internals.
type Diagnostic struct {
	MsgID logger.MsgID
	Text  string
}

func (d *Diagnostic) Error() string { return d.Text }

func diag(id logger.MsgID, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{MsgID: id, Text: fmt.Sprintf(format, args...)}
}

func fromBarrelFailure(f barrel.Failure) *Diagnostic {
	return &Diagnostic{MsgID: f.MsgID(), Text: f.Error()}
}

func errFileRead(path string, cause error) *Diagnostic {
	return diag(logger.MsgID_FileRead, "Could not read barrel file %q: %s", path, cause)
}

func errFileParse(path string, msgs []logger.Msg) *Diagnostic {
	var detail string
	if len(msgs) > 0 {
		detail = ": " + msgs[0].Text
	}
	return diag(logger.MsgID_FileParse, "Could not parse barrel file %q%s", path, detail)
}

func errBarrelFileNotFound(specifier string) *Diagnostic {
	return diag(logger.MsgID_BarrelFileNotFound, "Could not resolve barrel file for import %q", specifier)
}

func errInvalidFilePath(specifier string) *Diagnostic {
	return diag(logger.MsgID_InvalidFilePath, "Import %q resolves outside the working directory", specifier)
}

func errNoNamespaceImports(specifier string) *Diagnostic {
	return diag(logger.MsgID_NoNamespaceImports,
		"Namespace imports are not supported for barrel file optimization (import from %q)", specifier)
}

func errUnresolvedExports(barrelPath string, names []string) *Diagnostic {
	return diag(logger.MsgID_UnresolvedExports,
		"The following exports were not found in barrel file %q: %s", barrelPath, strings.Join(names, ", "))
}

func errInvalidEnv(text string) *Diagnostic {
	return diag(logger.MsgID_InvalidEnv, text)
}

// cyclic barrel re-export chains are reported as an invalid barrel file
// rather than a distinct error class.
func errCyclicBarrel(path string) *Diagnostic {
	return diag(logger.MsgID_InvalidBarrelFile, "Invalid barrel file: re-export chain through %q cycles back on itself", path)
}
