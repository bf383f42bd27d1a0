package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCmd удаляет всех пользователей. Без --yes ничего не делает.
func NewClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Удалить всех пользователей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("clear удаляет всех пользователей; подтвердите флагом --yes")
			}

			b, err := app.openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "подтвердить удаление")
	return cmd
}
