package testenv

import (
	"os"
	"path"
	"testing"
)

// TempDir creates a temporary directory.
// The temporary directory and contained files are automatically deleted during cleanup.
func TempDir(t testing.TB) (dir string) {
	dir, e := os.MkdirTemp("", "bertlv-test-*")
	if e != nil {
		panic(e)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// WriteTempFile writes content into a file in a temporary directory and returns its name.
func WriteTempFile(t testing.TB, name string, content []byte) (filename string) {
	filename = path.Join(TempDir(t), name)
	if e := os.WriteFile(filename, content, 0o644); e != nil {
		panic(e)
	}
	return filename
}
