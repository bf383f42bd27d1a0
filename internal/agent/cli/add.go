package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

// NewAddCmd создаёт команду регистрации пользователя.
//
// Поля задаются флагами --set k=v (повторяемый) или целиком --json.
// Значение в --set разбирается как bool, null, число или строка;
// строку в кавычках ("123") число не перехватит.
//
// Пример использования:
//
//	usuarios add --cedula 1020 --set nombre=Ana --set edad=30 --set vip=true
func NewAddCmd(app *App) *cobra.Command {
	var (
		cedula string
		sets   []string
		raw    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Зарегистрировать пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			campos, err := buildCampos(raw, sets)
			if err != nil {
				return err
			}
			if cedula == "" {
				if c, ok := campos[usuarios.KeyCedula].(string); ok {
					cedula = c
				}
			}
			if strings.TrimSpace(cedula) == "" {
				return fmt.Errorf("%w: --cedula обязателен", serr.ErrInvalidInput)
			}

			b, err := app.openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			u, err := b.Add(cmd.Context(), usuarios.New(cedula, campos))
			if err != nil {
				return err
			}
			return printJSON(cmd, u)
		},
	}

	cmd.Flags().StringVar(&cedula, "cedula", "", "cedula пользователя")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "поле k=v (можно повторять)")
	cmd.Flags().StringVar(&raw, "json", "", "поля одним JSON-объектом")

	return cmd
}

func buildCampos(raw string, sets []string) (map[string]any, error) {
	campos := map[string]any{}

	if raw != "" {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&campos); err != nil {
			return nil, fmt.Errorf("--json: %w", serr.ErrBadJSON)
		}
		if campos == nil {
			return nil, fmt.Errorf("--json: ожидается объект: %w", serr.ErrBadJSON)
		}
	}

	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: --set ожидает k=v, получено %q", serr.ErrInvalidInput, kv)
		}
		campos[k] = ParseValue(v)
	}
	return campos, nil
}

// ParseValue разбирает значение из --set.
func ParseValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil && json.Valid([]byte(v)) {
		return json.Number(v)
	}
	return v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
