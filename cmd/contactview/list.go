package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/contactview/formats"
	"github.com/arthur-debert/contactview/person"
)

func (cli *CLI) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the rows of the filtered view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.format()
			if err != nil {
				return err
			}

			sess, err := cli.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			ids := sess.view.IDs()
			rows := make([]formats.Row, 0, len(ids))
			for i, id := range ids {
				p := person.Lookup(sess.store, id)
				if p == nil {
					continue
				}
				rows = append(rows, formats.NewRow(i, p))
			}
			return format.Rows(cmd.OutOrStdout(), rows)
		},
	}
}
