package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bendaniels95/firelanding/internal/cli/config"
	"github.com/bendaniels95/firelanding/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site as static files",
		Long: `Render the landing page into a directory that any static host can serve.

Writes index.html, chart.svg, robots.txt, the static assets (stylesheets and
scripts minified with esbuild) and a Markdown copy of each legal document.`,
		Example: `  # Export to ./dist
  firepal export

  # Export unminified to a custom directory
  firepal export --out public --minify=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd)
		},
	}

	// Values live in config; flags only mark overrides.
	cmd.Flags().String("out", config.DefaultOutDir, "Output directory")
	cmd.Flags().Bool("minify", true, "Minify stylesheets and scripts")

	return cmd
}

func runExport(cmd *cobra.Command) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	page, err := siteLoader(cfg)()
	if err != nil {
		return err
	}

	res, err := export.Build(cmd.Context(), export.Config{
		OutDir: cfg.Export.OutDir,
		Minify: cfg.Export.Minify,
		Page:   page,
		Logger: config.GetLogger(cmd.Context()),
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range res.Files {
		_, _ = fmt.Fprintf(out, "  %s\n", f)
	}
	_, _ = fmt.Fprintf(out, "Exported %d files to %s\n", len(res.Files), cfg.Export.OutDir)
	return nil
}
