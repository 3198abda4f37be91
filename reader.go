package tiled

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ResourceReader fetches raw resource bytes by path. The loader uses it for
// tileset documents; image loaders can share the same reader so an entire
// project resolves through one source.
type ResourceReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileReader is a ResourceReader over the OS filesystem.
type FileReader struct{}

func (FileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FSReader adapts an fs.FS, such as an embed.FS or a fstest.MapFS, to the
// ResourceReader contract. OS-style paths produced by joining document
// directories are converted to the slash-separated rooted form fs.FS wants.
type FSReader struct {
	FS fs.FS
}

func (r FSReader) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(r.FS, cleanFSPath(path))
}

func cleanFSPath(p string) string {
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return "."
	}
	return s
}
