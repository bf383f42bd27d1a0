package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/api"
	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/config"
)

// NewLoginCmd сохраняет адрес сервера и токен оператора в
// ~/.usuarios/credentials.json. После этого команды без --server
// работают с сервером (пока не выполнен logout или не указан --local).
//
// Перед сохранением проверяется, что сервер отвечает.
//
//	usuarios login --server http://127.0.0.1:8080 --token-stdin < token.txt
func NewLoginCmd(app *App) *cobra.Command {
	var tokenStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Сохранить адрес сервера и токен оператора",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := app.serverURL()
			if server == "" {
				return errors.New("--server обязателен")
			}

			token := app.Token
			if token == "" {
				t, err := ReadSecret(cmd, "Token: ", tokenStdin)
				if err != nil {
					return err
				}
				token = t
			}

			// сервер доступен
			c := NewAPIClient(server, api.WithToken(token))
			if _, err := c.Count(cmd.Context()); err != nil {
				return fmt.Errorf("server %s: %w", server, err)
			}

			app.Creds.Server = server
			app.Creds.AccessToken = token
			if err := saveCreds(app); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (credentials saved)")
			return nil
		},
	}

	cmd.Flags().BoolVar(&tokenStdin, "token-stdin", false, "читать токен из stdin")
	return cmd
}

// NewLogoutCmd удаляет сохранённые адрес сервера и токен.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Забыть адрес сервера и токен",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Remove(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logout ok")
			return nil
		},
	}
}

func saveCreds(app *App) error {
	return config.Save(app.CredsPath, app.Creds)
}
