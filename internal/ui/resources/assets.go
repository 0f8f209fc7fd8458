// Package resources serves the site's static assets: the stylesheet, icons
// and social images.
package resources

import (
	"io/fs"
	"path"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(name string) string {
	return "/static/" + name
}

// Files lists every asset name in the static directory, sorted.
func Files() ([]string, error) {
	var names []string
	err := fs.WalkDir(FS(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path.Clean(p))
		}
		return nil
	})
	return names, err
}
