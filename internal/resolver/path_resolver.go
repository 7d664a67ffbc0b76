package resolver

import "strings"

// Foreign is the sentinel returned by Normalise when a path lies outside
// the sandbox and no symlink entry rescues it. Callers decide what to do
// with it; the path resolver itself never raises an error.
const Foreign = ""

// Normalise resolves path to an absolute, sandbox-checked form.
//
//   - Absolute and already inside cwd: cleaned and returned as-is.
//   - Absolute and outside cwd: the symlink map is consulted. A match is
//     substituted and normalised again (the substituted path is expected to
//     land inside cwd). No match returns (Foreign, false).
//   - Relative: resolved against anchorDir first, then the same rules apply.
func Normalise(fs FS, symlinks SymlinkMap, path string, anchorDir string, cwd string) (abs string, insideSandbox bool) {
	if !fs.IsAbs(path) {
		path = fs.Join(anchorDir, path)
	}

	abs, ok := fs.Abs(path)
	if !ok {
		return Foreign, false
	}

	if isInside(abs, cwd) {
		return abs, true
	}

	substituted, ok := symlinks.Substitute(abs)
	if !ok {
		return Foreign, false
	}

	substituted, ok = fs.Abs(substituted)
	if !ok {
		return Foreign, false
	}

	if isInside(substituted, cwd) {
		return substituted, true
	}

	return Foreign, false
}

func isInside(path string, cwd string) bool {
	if path == cwd {
		return true
	}
	return strings.HasPrefix(path, cwd+"/")
}
