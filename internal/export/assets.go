package export

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// minifyLoaders are the asset types esbuild can minify.
var minifyLoaders = map[string]api.Loader{
	".css": api.LoaderCSS,
	".js":  api.LoaderJS,
}

// assets copies every static file, minifying stylesheets and scripts when
// asked.
func (w *writer) assets(ctx context.Context, assets fs.FS, minify bool) error {
	return fs.WalkDir(assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := fs.ReadFile(assets, name)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", name, err)
		}
		if loader, ok := minifyLoaders[strings.ToLower(path.Ext(name))]; ok && minify {
			if data, err = Minify(name, data, loader); err != nil {
				return err
			}
		}
		return w.write(path.Join(staticDir, name), data)
	})
}

// Minify runs esbuild's transform over a single file.
func Minify(name string, src []byte, loader api.Loader) ([]byte, error) {
	result := api.Transform(string(src), api.TransformOptions{
		Sourcefile:        name,
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Target:            api.ES2020,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var errMsg string
		for _, e := range result.Errors {
			if e.Location != nil {
				errMsg += fmt.Sprintf("%s:%d:%d: %s\n", e.Location.File, e.Location.Line, e.Location.Column, e.Text)
			} else {
				errMsg += e.Text + "\n"
			}
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", errMsg)
	}
	return result.Code, nil
}
