package main

import (
	"fmt"
	"io"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newTagCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [NAME [OBJECT]]",
		Short: "Create, or list, tags",
		Args:  cobra.RangeArgs(0, 2),
	}

	annotate := cmd.Flags().BoolP("annotate", "a", false, "Make an annotated tag object.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listTagsCmd(cmd.OutOrStdout(), cfg)
		}
		name := args[0]
		target := ginternals.Head
		if len(args) > 1 {
			target = args[1]
		}
		return createTagCmd(cmd.OutOrStdout(), cfg, name, target, *annotate)
	}

	return cmd
}

func listTagsCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.WalkReferences(func(ref *ginternals.Reference) error {
		if name := ginternals.LocalTagShortName(ref.Name()); name != ref.Name() {
			fmt.Fprintln(out, name)
		}
		return nil
	})
}

func createTagCmd(_ io.Writer, cfg *globalFlags, name, targetName string, annotate bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	targetOid, err := r.Find(targetName, 0, false)
	if err != nil {
		return err
	}

	oid := targetOid
	if annotate {
		targetObj, err := r.Object(targetOid)
		if err != nil {
			return err
		}
		tag := object.NewTag(&object.TagParams{
			Target:  targetObj,
			Name:    name,
			Tagger:  object.NewSignature("git-go", "git-go@localhost"),
			Message: name + "\n",
		})
		oid, err = r.WriteObject(tag.ToObject())
		if err != nil {
			return err
		}
	}

	_, err = r.NewReference(ginternals.LocalTagFullName(name), oid)
	return err
}
