package main

import (
	"io"

	git "github.com/ngrigoriev/wyag-go"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newAddCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [paths...]",
		Short: "Add file contents to the index",
		Args:  cobra.ArbitraryArgs,
	}

	all := cmd.Flags().BoolP("all", "A", false, "Stage every file under the working tree.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return addCmd(cmd.OutOrStdout(), cfg, args, *all)
	}

	return cmd
}

func addCmd(_ io.Writer, cfg *globalFlags, paths []string, all bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.Add(paths, git.AddParams{All: all})
}
