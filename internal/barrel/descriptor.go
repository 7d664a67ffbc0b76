// Package barrel validates the shape of a parsed barrel file and builds the
// Descriptor of its re-exports. Following a re-export chain to its terminal
// source and rewriting a host file's imports are done by internal/transform
// on top of the Descriptor this package produces.
package barrel

import "github.com/barrelsplit/barrelsplit/internal/logger"

// ReExport is one entry in a barrel's export list: "export { Imported [as
// Local] } from Source". IsDefaultSource marks the "export { default as
// Local } from ..." shape, which terminates a chain as a default import
// rather than a named one.
type ReExport struct {
	ExportedName    string
	OriginalName    string
	Source          string
	IsDefaultSource bool
	IsTypeOnly      bool
	Range           logger.Range
}

// Descriptor is the validated contents of one barrel file: its re-exports in
// source order, plus the lookup index the re-export resolver uses.
type Descriptor struct {
	AbsPath string
	Exports []ReExport

	byName map[string]int
}

func newDescriptor(absPath string, exports []ReExport) *Descriptor {
	d := &Descriptor{AbsPath: absPath, Exports: exports, byName: make(map[string]int, len(exports))}
	for i, e := range exports {
		// A barrel re-declaring the same exported name twice is already a
		// static error in any real toolchain; keep the first one, it's not
		// this package's job to re-diagnose that.
		if _, exists := d.byName[e.ExportedName]; !exists {
			d.byName[e.ExportedName] = i
		}
	}
	return d
}

// Find looks up an exported name in O(1).
func (d *Descriptor) Find(name string) (ReExport, bool) {
	i, ok := d.byName[name]
	if !ok {
		return ReExport{}, false
	}
	return d.Exports[i], true
}

// IndexOf reports name's position in Exports, the source order the import
// rewriter uses to decide which of a host import's several replacement
// statements comes first.
func (d *Descriptor) IndexOf(name string) (int, bool) {
	i, ok := d.byName[name]
	return i, ok
}
