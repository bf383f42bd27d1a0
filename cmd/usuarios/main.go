// Package main содержит точку входа CLI usuarios.
//
// Версия и дата сборки задаются через ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=$(date +%F)" ./cmd/usuarios
package main

import (
	"github.com/joho/godotenv"

	"github.com/IvanChernomyrdin/go-usuarios/internal/agent/cli"
)

var (
	// buildVersion — версия приложения, по умолчанию "dev".
	buildVersion = "dev"
	// buildDate — дата сборки, по умолчанию "unknown".
	buildDate = "unknown"
)

func main() {
	// .env необязателен: JWT_SIGNING_KEY, USUARIOS_PASSPHRASE
	_ = godotenv.Load()

	cli.Execute(buildVersion, buildDate)
}
