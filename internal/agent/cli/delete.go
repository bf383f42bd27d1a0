package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd создаёт команду удаления пользователя по cedula.
// Отсутствие записи не ошибка: выводится deleted=false.
func NewDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <cedula>",
		Aliases: []string{"rm"},
		Short:   "Удалить пользователя по cedula",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			deleted, err := b.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted=%t\n", deleted)
			return nil
		},
	}
}
