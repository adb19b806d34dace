package main

import (
	"fmt"
	"io"

	git "github.com/ngrigoriev/wyag-go"
	"github.com/ngrigoriev/wyag-go/ginternals/config"
)

// loadRepository opens the repository found by walking up from cfg.C,
// honoring --git-dir/--work-tree/--bare overrides.
func loadRepository(cfg *globalFlags) (*git.Repository, error) {
	c, err := config.LoadConfig(cfg.env, config.LoadConfigOptions{
		WorkingDirectory: cfg.C.String(),
		GitDirPath:       cfg.GitDir,
		WorkTreePath:     cfg.WorkTree,
		IsBare:           cfg.Bare,
	})
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	return git.OpenRepository(c, git.OpenParams{})
}

func fprintln(quiet bool, out io.Writer, msg ...interface{}) {
	if !quiet {
		fmt.Fprintln(out, msg...)
	}
}

func fprintf(quiet bool, out io.Writer, format string, a ...interface{}) {
	if !quiet {
		fmt.Fprintf(out, format, a...)
	}
}
