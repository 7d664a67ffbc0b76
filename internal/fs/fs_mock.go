package fs

// This is a mock implementation of the "fs" package for use in tests. It
// never touches the real filesystem; it answers from a fixed map of paths
// to contents that the test supplies up front.

import (
	"errors"
	"time"
)

type MockFile struct {
	Contents string
	ModTime  time.Time
}

type mockFS struct {
	files map[string]MockFile
	fp    goFilepath
}

// MockFS builds an FS rooted at absWorkingDir, backed entirely by the given
// path -> contents map. All paths, including absWorkingDir, must already be
// absolute and use forward slashes.
func MockFS(files map[string]string, absWorkingDir string) FS {
	withTimes := make(map[string]MockFile, len(files))
	for k, v := range files {
		withTimes[k] = MockFile{Contents: v}
	}
	return &mockFS{
		files: withTimes,
		fp:    goFilepath{cwd: absWorkingDir, pathSeparator: '/'},
	}
}

var errMockFileNotFound = errors.New("file does not exist")

func (fs *mockFS) ReadFile(path string) (string, error) {
	if file, ok := fs.files[path]; ok {
		return file.Contents, nil
	}
	return "", errMockFileNotFound
}

func (fs *mockFS) FileExists(path string) bool {
	_, ok := fs.files[path]
	return ok
}

func (fs *mockFS) ModKey(path string) (ModKey, error) {
	file, ok := fs.files[path]
	if !ok {
		return ModKey{}, errMockFileNotFound
	}
	return ModKey{size: int64(len(file.Contents)), mtime_sec: file.ModTime.Unix()}, nil
}

func (fs *mockFS) IsAbs(p string) bool { return fs.fp.isAbs(p) }

func (fs *mockFS) Abs(p string) (string, bool) {
	abs, err := fs.fp.abs(p)
	return abs, err == nil
}

func (fs *mockFS) Dir(p string) string         { return fs.fp.dir(p) }
func (fs *mockFS) Join(parts ...string) string { return fs.fp.clean(fs.fp.join(parts)) }
func (fs *mockFS) Cwd() string                 { return fs.fp.cwd }

func (fs *mockFS) Rel(base string, target string) (string, bool) {
	if rel, err := fs.fp.rel(base, target); err == nil {
		return rel, true
	}
	return "", false
}
