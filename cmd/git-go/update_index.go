package main

import (
	"io"

	git "github.com/ngrigoriev/wyag-go"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newUpdateIndexCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-index [paths...]",
		Short: "Register file contents in the working tree to the index",
		Args:  cobra.ArbitraryArgs,
	}

	add := cmd.Flags().Bool("add", false, "Stage a file that doesn't yet exist in the index.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return updateIndexCmd(cmd.OutOrStdout(), cfg, args, *add)
	}

	return cmd
}

// updateIndexCmd is a thin wrapper over Add: --add is the only mode
// this implementation supports, and it behaves exactly like `add`.
func updateIndexCmd(_ io.Writer, cfg *globalFlags, paths []string, _ bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.Add(paths, git.AddParams{})
}
