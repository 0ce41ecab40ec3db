package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/auth-service/internal/config"
	"github.com/hotelhub/auth-service/internal/db"
	"github.com/hotelhub/auth-service/internal/events"
	"github.com/hotelhub/auth-service/internal/httpserver"
	"github.com/hotelhub/auth-service/internal/logging"
	"github.com/hotelhub/auth-service/internal/middleware"
	"github.com/hotelhub/auth-service/internal/repo"
	"github.com/hotelhub/auth-service/internal/service"
	"github.com/hotelhub/auth-service/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DSN())
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: database}

	// Missing seed roles make registration impossible, so this is fatal.
	if err := service.EnsureSeedRoles(logging.IntoContext(initCtx, logger), gormRepo); err != nil {
		cancel()
		log.Fatalf("role seed error: %v", err)
	}
	cancel()

	codec := &token.Codec{Secret: cfg.JWTSecret, TTL: cfg.AccessTokenTTL}
	refreshSvc := &service.RefreshTokenService{Repo: gormRepo, TTL: cfg.RefreshTokenTTL}
	authSvc := &service.AuthService{Repo: gormRepo, Codec: codec, Refresh: refreshSvc}

	producer := events.NewProducer(cfg.KafkaAddress)
	defer producer.Close()

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	httpserver.Register(e, &httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		Users:     &httpserver.UserHTTP{Repo: gormRepo},
		People:    &httpserver.PeopleHTTP{Repo: gormRepo},
		TokenAuth: middleware.NewTokenAuth(codec),
		Logger:    logger,
	})

	go func() {
		if err := e.Start(cfg.Addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
}
