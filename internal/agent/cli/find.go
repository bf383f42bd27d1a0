package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// NewFindCmd создаёт команду поиска пользователя по cedula.
//
//	usuarios find 1020
func NewFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find <cedula>",
		Short: "Найти пользователя по cedula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			u, ok, err := b.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("cedula %q: %w", args[0], serr.ErrNotFound)
			}
			return printJSON(cmd, u)
		},
	}
}
