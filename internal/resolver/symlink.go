package resolver

import "strings"

// SymlinkMap lets the sandbox logically include paths that live outside the
// working directory. Keys are split at compile time into file-level entries
// (the key names a specific file, extension and all) and directory-level
// entries (the key names a directory prefix). Lookup tries file-level exact
// matches first, then the longest matching directory-level prefix.
type SymlinkMap struct {
	files map[string]string
	dirs  []symlinkDir
}

type symlinkDir struct {
	external string
	internal string
}

// FS is the minimal filesystem surface the resolver needs: turning
// caller-relative or platform-flavoured strings into normalised absolute
// paths. internal/fs.FS satisfies this.
type FS interface {
	IsAbs(path string) bool
	Abs(path string) (string, bool)
	Dir(path string) string
	Join(parts ...string) string
	Rel(base string, target string) (string, bool)
	Cwd() string
}

// CompileSymlinkMap normalises every key and value to an absolute path and
// splits them into the file-level/directory-level buckets used by Substitute.
// Trailing slashes on keys are stripped before classification.
func CompileSymlinkMap(raw map[string]string, fs FS) (SymlinkMap, error) {
	m := SymlinkMap{files: make(map[string]string)}

	for external, internal := range raw {
		external = strings.TrimRight(external, "/")
		internal = strings.TrimRight(internal, "/")

		absExternal, ok := fs.Abs(external)
		if !ok {
			continue
		}
		absInternal, ok := fs.Abs(internal)
		if !ok {
			continue
		}

		if looksLikeFile(absExternal) {
			m.files[absExternal] = absInternal
		} else {
			m.dirs = append(m.dirs, symlinkDir{external: absExternal, internal: absInternal})
		}
	}

	return m, nil
}

// looksLikeFile classifies a symlink map key: one ending in a filename
// with an extension is file-level, everything else is directory-level.
func looksLikeFile(path string) bool {
	slash := strings.LastIndexByte(path, '/')
	base := path[slash+1:]
	dot := strings.LastIndexByte(base, '.')
	return dot > 0
}

// Substitute rewrites an absolute, outside-CWD path using the map. It
// returns ok=false when no entry applies, in which case the caller should
// treat the path as foreign.
func (m SymlinkMap) Substitute(path string) (string, bool) {
	if internal, ok := m.files[path]; ok {
		return internal, true
	}

	bestLen := -1
	best := ""
	for _, dir := range m.dirs {
		if path == dir.external {
			if len(dir.external) > bestLen {
				bestLen = len(dir.external)
				best = dir.internal
			}
			continue
		}
		if strings.HasPrefix(path, dir.external+"/") {
			if len(dir.external) > bestLen {
				bestLen = len(dir.external)
				best = dir.internal + path[len(dir.external):]
			}
		}
	}

	if bestLen == -1 {
		return "", false
	}
	return best, true
}
