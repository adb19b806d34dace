package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ngrigoriev/wyag-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newRemoteCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote add|remove|rename|get-url|list [args...]",
		Short: "Manage the set of tracked remotes",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return remoteCmd(cmd.OutOrStdout(), cfg, args[0], args[1:])
	}

	return cmd
}

func remoteCmd(out io.Writer, cfg *globalFlags, sub string, args []string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	files := r.Config().Files()

	switch sub {
	case "add":
		if len(args) != 2 {
			return errors.New("usage: remote add <name> <url>")
		}
		files.SetRemote(args[0], args[1])
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: remote remove <name>")
		}
		files.RemoveRemote(args[0])
	case "rename":
		if len(args) != 2 {
			return errors.New("usage: remote rename <old> <new>")
		}
		if err := files.RenameRemote(args[0], args[1]); err != nil {
			return err
		}
	case "get-url":
		if len(args) != 1 {
			return errors.New("usage: remote get-url <name>")
		}
		url, ok := files.RemoteURL(args[0])
		if !ok {
			return fmt.Errorf("no such remote %q", args[0])
		}
		fmt.Fprintln(out, url)
		return nil
	case "list":
		for _, name := range files.RemoteNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown remote subcommand %q", sub)
	}

	return files.Save()
}
