package resolver

import "strings"

// Alias is a configured rewrite from a bare import specifier to one or more
// candidate absolute file paths, restricted to importers under an optional
// set of directory prefixes.
type Alias struct {
	Pattern Pattern
	// Paths is tried in order; the first candidate that resolves to an
	// existing file wins. The alias engine stops at the first candidate that
	// resolves outside the sandbox and reports E_INVALID_FILE_PATH instead of
	// trying the later ones.
	Paths []string
	// Context, when non-empty, is a set of absolute directory prefixes: the
	// alias only applies to imports issued from a file under one of them.
	Context []string
}

// AppliesTo reports whether this alias is usable for an import issued from
// a file whose absolute path is fileAbsPath.
func (a Alias) AppliesTo(fileAbsPath string) bool {
	if len(a.Context) == 0 {
		return true
	}
	for _, dir := range a.Context {
		if fileAbsPath == dir || strings.HasPrefix(fileAbsPath, dir+"/") {
			return true
		}
	}
	return false
}
