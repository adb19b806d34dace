package main

import (
	"io"

	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout COMMIT-ISH DIRECTORY",
		Short: "Materialize a tree into an empty directory",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return checkoutCmd(cmd.OutOrStdout(), cfg, args[0], args[1])
	}

	return cmd
}

func checkoutCmd(_ io.Writer, cfg *globalFlags, commitish, dest string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	treeOid, err := r.Find(commitish, object.TypeTree, false)
	if err != nil {
		return err
	}

	return r.Checkout(treeOid, afero.NewOsFs(), dest)
}
