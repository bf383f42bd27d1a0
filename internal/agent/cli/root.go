// Package cli реализует командный интерфейс (CLI) usuarios.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - выбор бэкенда: локальный слот или HTTP API сервера;
//   - загрузку локальных учётных данных (адрес сервера и токен);
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/config"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// Dir — каталог для driver=file. Пусто — ~/.usuarios.
	Dir string
	// Key — ключ слота.
	Key string
	// Driver — file|memory|postgres|sqlite.
	Driver string
	// DSN — postgres DSN или путь к файлу sqlite.
	DSN string
	// Encrypt — шифровать значения слота паролем.
	Encrypt bool
	// PassphraseStdin — читать пароль слота из stdin, а не с терминала.
	PassphraseStdin bool

	// Server — адрес сервера; если задан, команды идут в HTTP API.
	Server string
	// Token — токен оператора для изменяющих запросов.
	Token string
	// Local — игнорировать сервер из credentials.json.
	Local bool

	// CredsPath — путь к файлу с сохранёнными учётными данными.
	CredsPath string
	// Creds — загруженные учётные данные.
	Creds *config.Credentials
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// В PersistentPreRunE загружаются сохранённые учётные данные.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "usuarios",
		Short: "usuarios — реестр пользователей по cedula",
		Long: `usuarios CLI.

Команды:
  add       Зарегистрировать пользователя
  find      Найти пользователя по cedula
  delete    Удалить пользователя по cedula
  count     Число пользователей
  list      Все пользователи в порядке регистрации
  clear     Удалить всех пользователей
  token     Выпустить токен оператора
  login     Сохранить адрес сервера и токен
  logout    Забыть адрес сервера и токен
  version   Версия и дата сборки

Без --server команды работают с локальным слотом (по умолчанию ~/.usuarios).

Примеры:

  usuarios add --cedula 1020 --set nombre=Ana --set edad=30
  usuarios find 1020
  usuarios --server http://127.0.0.1:8080 --token $TOKEN delete 1020
  usuarios clear --yes
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.Dir, "dir", "", "каталог слота для driver=file (по умолчанию ~/.usuarios)")
	pf.StringVar(&app.Key, "key", storage.DefaultKey, "ключ слота")
	pf.StringVar(&app.Driver, "driver", storage.DriverFile, "file|memory|postgres|sqlite")
	pf.StringVar(&app.DSN, "dsn", "", "postgres DSN или путь к файлу sqlite")
	pf.BoolVar(&app.Encrypt, "encrypt", false, "шифровать слот паролем (USUARIOS_PASSPHRASE или запрос)")
	pf.BoolVar(&app.PassphraseStdin, "passphrase-stdin", false, "читать пароль слота из stdin")
	pf.StringVar(&app.Server, "server", "", "адрес сервера, например http://127.0.0.1:8080")
	pf.StringVar(&app.Token, "token", "", "токен оператора")
	pf.BoolVar(&app.Local, "local", false, "работать с локальным слотом, даже если выполнен login")

	cmd.AddCommand(NewAddCmd(app))
	cmd.AddCommand(NewFindCmd(app))
	cmd.AddCommand(NewDeleteCmd(app))
	cmd.AddCommand(NewCountCmd(app))
	cmd.AddCommand(NewListCmd(app))
	cmd.AddCommand(NewClearCmd(app))
	cmd.AddCommand(NewTokenCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(buildVersion, buildDate).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
