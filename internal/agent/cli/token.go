package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-usuarios/internal/server/crypto"
)

// NewTokenCmd группирует команды работы с токенами оператора.
func NewTokenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Токены оператора",
	}
	cmd.AddCommand(NewTokenMintCmd(app))
	return cmd
}

// NewTokenMintCmd выпускает HS256-токен оператора тем же ключом,
// что указан в auth.jwt.signing_key сервера.
//
// Ключ берётся из JWT_SIGNING_KEY, из stdin (--signing-key-stdin)
// или запрашивается скрытым вводом.
//
//	usuarios token mint --operator camilo --ttl 2h
func NewTokenMintCmd(app *App) *cobra.Command {
	var (
		operator string
		issuer   string
		audience string
		ttl      time.Duration
		keyStdin bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Выпустить токен оператора",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := os.Getenv("JWT_SIGNING_KEY")
			if key == "" {
				k, err := ReadSecret(cmd, "Signing key: ", keyStdin)
				if err != nil {
					return err
				}
				key = k
			}

			token, err := crypto.NewOperatorToken(operator, crypto.TokenConfig{
				Issuer:     issuer,
				Audience:   audience,
				SigningKey: key,
				TTL:        ttl,
			})
			if err != nil {
				return err
			}

			if save {
				app.Creds.AccessToken = token
				if app.Server != "" {
					app.Creds.Server = app.Server
				}
				if err := saveCreds(app); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "имя оператора (sub)")
	cmd.Flags().StringVar(&issuer, "issuer", "usuarios", "iss")
	cmd.Flags().StringVar(&audience, "audience", "usuarios-cli", "aud")
	cmd.Flags().DurationVar(&ttl, "ttl", crypto.DefaultTTL, "срок жизни токена")
	cmd.Flags().BoolVar(&keyStdin, "signing-key-stdin", false, "читать ключ подписи из stdin")
	cmd.Flags().BoolVar(&save, "save", false, "сохранить токен в credentials.json")
	cmd.MarkFlagRequired("operator")

	return cmd
}
