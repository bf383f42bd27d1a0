package cli

import (
	"github.com/spf13/cobra"
)

// NewListCmd выводит всех пользователей JSON-массивом в порядке регистрации.
func NewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Все пользователи",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			items, err := b.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
}
