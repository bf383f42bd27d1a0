// Package main содержит точку входа HTTP-сервера usuarios.
//
// Пакет отвечает за инициализацию и жизненный цикл сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации из ./configs/server.yaml (или USUARIOS_CONFIG);
//   - открытие слота хранения и загрузку коллекции пользователей;
//   - создание middleware, HTTP-обработчиков и роутера;
//   - запуск HTTP(S)-сервера с заданными таймаутами;
//   - корректное (graceful) завершение по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-usuarios/internal/server/api"
	"github.com/IvanChernomyrdin/go-usuarios/internal/server/config"
	"github.com/IvanChernomyrdin/go-usuarios/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-usuarios/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-usuarios/internal/storage"
	"github.com/IvanChernomyrdin/go-usuarios/internal/usuarios"
)

const defaultConfigPath = "./configs/server.yaml"

func main() {
	bootLog := logger.New(logger.Options{File: "server.log"})
	sugar := bootLog.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("USUARIOS_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		sugar.Fatal(err)
	}

	log := logger.New(logger.Options{Dir: cfg.Log.Dir, File: cfg.Log.File, Level: cfg.Log.Level})
	defer log.Sync()
	sugar = log.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// открываем слот и загружаем коллекцию
	slot, closer, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		sugar.Fatalf("open storage: %v", err)
	}
	defer closer.Close()

	store, err := usuarios.Open(ctx, slot, usuarios.WithKey(cfg.Storage.Key))
	if err != nil {
		sugar.Fatalf("load usuarios: %v", err)
	}
	store.Subscribe(usuarios.LogObserver(log))
	sugar.Infof("storage driver=%s key=%s loaded=%d", cfg.Storage.Driver, store.Key(), store.Count())

	// создаём хандлер и роутер
	handler := api.NewHandler(store, log, cfg.Server.MaxBodyBytes)

	opts := h.RouterOptions{AllowedOrigins: cfg.CORS.AllowedOrigins}
	if cfg.AuthEnabled() {
		opts.Verifier = middleware.NewJWTVerifier(
			cfg.Auth.JWT.SigningKey,
			cfg.Auth.Issuer,
			cfg.Auth.Audience,
		)
	} else {
		sugar.Warn("auth.jwt.signing_key is empty: mutating endpoints are open")
	}
	router := h.NewRouter(handler, opts)

	//создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t)", addr, cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-gctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
