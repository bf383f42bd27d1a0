package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCountCmd выводит число пользователей.
func NewCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Число пользователей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			n, err := b.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
