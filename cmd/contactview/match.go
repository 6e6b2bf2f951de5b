package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/contactview/store"
	"github.com/arthur-debert/contactview/types"
)

func (cli *CLI) newMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <id>",
		Short: "Report whether a record passes the filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || parsed == 0 {
				return fmt.Errorf("invalid record id %q", args[0])
			}
			id := types.RecordID(parsed)

			sess, err := cli.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			if _, ok := sess.store.Record(id); !ok {
				return fmt.Errorf("record %d: %w", id, store.ErrRecordNotFound)
			}

			label := sess.store.DisplayLabel(id)
			out := cmd.OutOrStdout()
			if !sess.view.FilterID(id) {
				_, err = fmt.Fprintf(out, "%d %s: no match\n", id, label)
				return err
			}
			_, err = fmt.Fprintf(out, "%d %s: match (row %d)\n", id, label, sess.view.RowForID(id))
			return err
		},
	}
}
