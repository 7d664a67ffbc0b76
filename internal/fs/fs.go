package fs

import (
	"errors"
	"io/ioutil"
	"os"
	"runtime"
)

type EntryKind uint8

const (
	DirEntry EntryKind = 1
	FileEntry EntryKind = 2
)

type Entry struct {
	Kind EntryKind
}

// ModKey is a cheap fingerprint of a file's on-disk state (size, mtime
// seconds, mode). Two reads of an unmodified file produce equal keys.
// transform.Cache does not consult it: a cached barrel descriptor is kept
// for the Cache's lifetime without checking the file again.
type ModKey struct {
	size      int64
	mtime_sec int64
	mode      uint32
}

const modKeySafetyGap = 2 // in seconds

var modKeyUnusable = errors.New("The modification key is unusable")

// FS is the sandboxed filesystem facade the barrel rewriter reads through.
// It never exposes anything above what's needed to locate and read a barrel
// file: no directory listings, no globbing, no writes.
type FS interface {
	ReadFile(path string) (contents string, err error)
	FileExists(path string) bool

	IsAbs(path string) bool
	Abs(path string) (string, bool)
	Dir(path string) string
	Join(parts ...string) string
	Rel(base string, target string) (string, bool)
	Cwd() string

	// ModKey returns a fingerprint for the file at path, or an error if one
	// can't be produced (missing file, or a filesystem that doesn't expose
	// usable modification times).
	ModKey(path string) (ModKey, error)
}

////////////////////////////////////////////////////////////////////////////////

type realFS struct {
	fp goFilepath
}

func RealFS() FS {
	var fp goFilepath
	if runtime.GOOS == "windows" {
		fp.isWindows = true
		fp.pathSeparator = '\\'
	} else {
		fp.pathSeparator = '/'
	}

	if cwd, err := os.Getwd(); err == nil {
		if resolved, err := fp.evalSymlinks(cwd); err == nil {
			fp.cwd = resolved
		} else {
			fp.cwd = cwd
		}
	} else {
		fp.cwd = "/"
	}

	return &realFS{fp: fp}
}

func (fs *realFS) ReadFile(path string) (string, error) {
	buffer, err := ioutil.ReadFile(path)
	return string(buffer), err
}

func (fs *realFS) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (fs *realFS) ModKey(path string) (ModKey, error) {
	return modKey(path)
}

func (fs *realFS) IsAbs(p string) bool { return fs.fp.isAbs(p) }

func (fs *realFS) Abs(p string) (string, bool) {
	abs, err := fs.fp.abs(p)
	return abs, err == nil
}

func (fs *realFS) Dir(p string) string  { return fs.fp.dir(p) }
func (fs *realFS) Join(parts ...string) string {
	return fs.fp.clean(fs.fp.join(parts))
}
func (fs *realFS) Cwd() string { return fs.fp.cwd }

func (fs *realFS) Rel(base string, target string) (string, bool) {
	if rel, err := fs.fp.rel(base, target); err == nil {
		return rel, true
	}
	return "", false
}
