package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit AUTHOR COMMITTER MESSAGE",
		Short: "Record changes staged in the index as a new commit",
		Args:  cobra.ExactArgs(3),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, args[0], args[1], args[2])
	}

	return cmd
}

// parseSignature accepts either the git "Name <email>" format or a
// bare name.
func parseSignature(s string) object.Signature {
	if sig, err := object.NewSignatureFromBytes([]byte(s)); err == nil {
		return sig
	}
	lt := strings.Index(s, "<")
	gt := strings.LastIndex(s, ">")
	if lt >= 0 && gt > lt {
		return object.NewSignature(strings.TrimSpace(s[:lt]), s[lt+1:gt])
	}
	return object.NewSignature(s, "")
}

func commitCmd(out io.Writer, cfg *globalFlags, authorStr, committerStr, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	author := parseSignature(authorStr)
	committer := parseSignature(committerStr)

	oid, err := r.CreateCommit(author, committer, message)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, oid.String())
	return nil
}
