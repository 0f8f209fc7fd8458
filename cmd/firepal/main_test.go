package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bendaniels95/firelanding/internal/cli"
)

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	output := buf.String()
	for _, sub := range []string{"serve", "export", "chart", "version"} {
		if !strings.Contains(output, sub) {
			t.Errorf("expected help output to list %q, got: %s", sub, output)
		}
	}
}
