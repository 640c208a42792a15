package cli

import (
	"github.com/spf13/cobra"
)

func authorsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "authors",
		Short: "Inspect authors",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List authors by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			authors, err := a.svc.ListAuthors(cmd.Context())
			if err != nil {
				return err
			}
			return a.printAuthors(cmd, authors)
		},
	})
	return c
}
