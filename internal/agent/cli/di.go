package cli

import (
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/api"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	OpenSlot     = storage.Open
	NewLogger    = func(dir string) *logger.Logger {
		return logger.New(logger.Options{Dir: dir, File: "cli.log"})
	}
	ReadSecret = func(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
		return readSecret(cmd, prompt, fromStdin)
	}
)
