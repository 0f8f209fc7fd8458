package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bendaniels95/firelanding/internal/cli/config"
	"github.com/bendaniels95/firelanding/internal/ui"
	"github.com/bendaniels95/firelanding/internal/ui/resources"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page",
		Long: `Start a web server for the landing page.

Routes:
- /             the page (?section=pricing opens at a section)
- /chart.svg    the hero chart as a standalone image
- /robots.txt   crawler rules matching the robots meta tag
- /healthz      liveness check

--watch reloads open browsers when the content file or the static assets
change. Static assets are watched when built with -tags dev.`,
		Example: `  # Serve on the default port
  firepal serve

  # Edit copy with live reload
  firepal serve --content-file content.yaml --watch --open`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	// Values live in config; flags only mark overrides.
	cmd.Flags().Int("port", config.DefaultPort, "Port to serve on")
	cmd.Flags().Bool("dev", false, "Serve the hot reload stream")
	cmd.Flags().Bool("watch", false, "Reload browsers on file changes (implies --dev)")
	cmd.Flags().Bool("open", false, "Open the page in a browser")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	logger := config.GetLogger(cmd.Context())

	var paths []string
	if cfg.Server.Watch {
		if paths, err = watchPaths(cfg, resources.SourceDir()); err != nil {
			return err
		}
	}

	server, err := ui.NewServer(ui.Config{
		Load:       siteLoader(cfg),
		Port:       cfg.Server.Port,
		Dev:        cfg.Server.Dev,
		Watch:      cfg.Server.Watch,
		WatchPaths: paths,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	if cfg.Server.AutoOpen {
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\nPress Ctrl+C to stop\n", url)
	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
