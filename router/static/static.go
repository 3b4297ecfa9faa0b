package static

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/http/mime"
	"github.com/indigo-web/webpool/http/status"
)

// Resolver maps request paths onto regular files confined to the root directory.
type Resolver struct {
	root string
}

// New returns a resolver serving files from root. The root is made absolute and, if it
// exists, its symlinks are evaluated, so the containment check compares canonical paths.
// A missing root isn't an error: such a resolver simply can't serve anything.
func New(root string) *Resolver {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}

	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	return &Resolver{root: abs}
}

// CanServe reports whether the path resolves to a readable regular file within the root.
func (r *Resolver) CanServe(path string) bool {
	_, ok := r.resolve(path)
	return ok
}

// Serve returns the response carrying the file contents. status.ErrNotFound is returned if
// the file can't be served for whatever reason, including attempts to escape the root.
func (r *Resolver) Serve(path string) (*http.Response, error) {
	file, ok := r.resolve(path)
	if !ok {
		return nil, status.ErrNotFound
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, status.ErrNotFound
	}

	return http.NewResponse().
		ContentType(mime.WithCharset(mime.ByExtension(file))).
		Bytes(content), nil
}

func (r *Resolver) resolve(path string) (string, bool) {
	if strings.IndexByte(path, 0) != -1 {
		return "", false
	}

	joined := filepath.Join(r.root, filepath.FromSlash(path))
	if !r.contains(joined) {
		return "", false
	}

	real, err := filepath.EvalSymlinks(joined)
	if err != nil || !r.contains(real) {
		return "", false
	}

	stat, err := os.Stat(real)
	if err != nil || !stat.Mode().IsRegular() {
		return "", false
	}

	return real, true
}

func (r *Resolver) contains(path string) bool {
	if path == r.root {
		return true
	}

	prefix := r.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(path, prefix)
}
