package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"herbnet/infrastructure/di"
	"herbnet/interfaces/http/rest"
)

func main() {
	configPath := flag.String("config", os.Getenv("HERBNET_CONFIG"), "path to the YAML configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, *configPath)
	if err != nil {
		log.Fatalf("initialize: %v", err)
	}
	defer container.Shutdown()

	server := &http.Server{
		Addr:         container.Config.Server.Address,
		Handler:      rest.NewRouter(container),
		ReadTimeout:  container.Config.Server.ReadTimeout,
		WriteTimeout: container.Config.Server.WriteTimeout,
		IdleTimeout:  container.Config.Server.IdleTimeout,
	}

	go func() {
		container.Logger.Info("server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	container.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), container.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
