package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streamhive/streamhive-backend/internal/bootstrap"
	"github.com/streamhive/streamhive-backend/internal/server"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "internal/config/config.yaml"
	}

	app, cleanup, err := bootstrap.Init(configPath)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	fiberApp := server.New(app.Config, app.Users, app.Videos, app.Subscriptions, app.JWT, app.Logger)

	go func() {
		addr := fmt.Sprintf(":%d", app.Config.App.Port)
		app.Sugar.Infof("listening on %s", addr)
		if err := fiberApp.Listen(addr); err != nil {
			app.Sugar.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	app.Sugar.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()

	_ = fiberApp.Shutdown()
	cleanup(ctx)
	app.Sugar.Info("shutdown completed")
}
