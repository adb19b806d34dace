package main

import (
	"fmt"
	"io"

	"github.com/ngrigoriev/wyag-go/ginternals"
	"github.com/ngrigoriev/wyag-go/ginternals/object"
	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [COMMIT]",
		Short: "Render the commit ancestry as a graphviz DAG",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		commitish := ginternals.Head
		if len(args) > 0 {
			commitish = args[0]
		}
		return logCmd(cmd.OutOrStdout(), cfg, commitish)
	}

	return cmd
}

// logCmd walks the parent chain from commitish and emits it as a
// graphviz digraph, one "c_<child> -> c_<parent>" edge per link.
func logCmd(out io.Writer, cfg *globalFlags, commitish string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.Find(commitish, object.TypeCommit, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "digraph wyaglog{")
	fmt.Fprintln(out, "  node[shape=rect]")

	seen := map[ginternals.Oid]struct{}{}
	queue := []ginternals.Oid{oid}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		c, err := r.Commit(id)
		if err != nil {
			return err
		}
		for _, parent := range c.ParentIDs() {
			fmt.Fprintf(out, "  c_%s -> c_%s\n", id.String(), parent.String())
			queue = append(queue, parent)
		}
	}

	fmt.Fprintln(out, "}")
	return nil
}
