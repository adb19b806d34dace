package main

import (
	"fmt"
	"io"

	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newRevParseCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse NAME",
		Short: "Resolve a name to an object id",
		Args:  cobra.ExactArgs(1),
	}

	wyagType := cmd.Flags().String("wyag-type", "", "Only follow the object down to the given type (commit, tree, blob, tag).")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return revParseCmd(cmd.OutOrStdout(), cfg, args[0], *wyagType)
	}

	return cmd
}

func revParseCmd(out io.Writer, cfg *globalFlags, name, typ string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	var kind object.Type
	if typ != "" {
		kind, err = object.NewTypeFromString(typ)
		if err != nil {
			return xerrors.Errorf("%s: %w", typ, err)
		}
	}

	oid, err := r.Find(name, kind, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, oid.String())
	return nil
}
