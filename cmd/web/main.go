package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"minishop/internal/config"
	"minishop/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	api := web.NewAPIClient(cfg.APIBaseURL)
	sessions := web.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	app := web.NewApp(api, sessions)

	log.WithFields(log.Fields{
		"port": cfg.WebPort,
		"api":  cfg.APIBaseURL,
	}).Info("starting session gateway")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.WebPort); err != nil {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	<-quit
	log.Info("shutting down session gateway")

	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("session gateway stopped")
}
