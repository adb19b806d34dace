package main

import (
	"fmt"
	"io"

	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newLsFilesCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "Show information about staged files",
		Args:  cobra.NoArgs,
	}

	stage := cmd.Flags().BoolP("stage", "s", false, "Show staged contents' mode bits, object id, and stage number.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsFilesCmd(cmd.OutOrStdout(), cfg, *stage)
	}

	return cmd
}

func lsFilesCmd(out io.Writer, cfg *globalFlags, stage bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.Index()
	if err != nil {
		return err
	}

	for _, e := range idx.Entries {
		if stage {
			fmt.Fprintf(out, "%06o %s %d\t%s\n", e.Mode, e.ID.String(), e.Stage, e.Path)
			continue
		}
		fmt.Fprintln(out, e.Path)
	}
	return nil
}
