package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd — `usuarios version`: версия клиента usuarios и дата сборки
// из ldflags. С --short печатается только номер версии, удобно для скриптов.
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Версия клиента usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if short {
				_, err := fmt.Fprintln(out, buildVersion)
				return err
			}
			_, err := fmt.Fprintf(out, "usuarios %s (сборка %s)\n", buildVersion, buildDate)
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "только номер версии")
	return cmd
}
