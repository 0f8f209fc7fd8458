//go:build dev

package resources

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// SourceDir is the absolute path of the static directory on disk, located
// from this source file so the binary can run from anywhere in the checkout.
func SourceDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// FS returns the static assets read live from disk.
func FS() fs.FS {
	return os.DirFS(SourceDir())
}

// Handler returns an HTTP handler for serving static files.
// In dev mode, edits to the stylesheet show up on the next request.
func Handler() http.Handler {
	staticDir := SourceDir()
	slog.Info("static assets served from filesystem", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.StripPrefix("/static/", http.FileServer(http.FS(os.DirFS(staticDir)))).ServeHTTP(w, r)
	})
}
