package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/vidora/api/internal/adapters/handler/http"
	"github.com/vidora/api/internal/adapters/repository/postgres"
	"github.com/vidora/api/internal/adapters/storage"
	"github.com/vidora/api/internal/config"
	"github.com/vidora/api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	mediaStorage, err := storage.NewDiskStorage(cfg.MediaRoot)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	videoRepo := postgres.NewVideoRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	historyRepo := postgres.NewWatchHistoryRepository(db)
	statsRepo := postgres.NewChannelStatsRepository(db)

	tokenService := services.NewTokenService(cfg.Auth)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	videoService := services.NewVideoService(videoRepo, userRepo, historyRepo, mediaStorage)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo)
	historyService := services.NewHistoryService(historyRepo)
	statsService := services.NewStatsService(userRepo, statsRepo)

	authHandler := http.NewAuthHandler(authService, userService, cfg.Auth, cfg.Cookies)
	userHandler := http.NewUserHandler(userService, historyService)
	videoHandler := http.NewVideoHandler(videoService)
	subscriptionHandler := http.NewSubscriptionHandler(subscriptionService, statsService)

	handler := http.NewHandler(authHandler, userHandler, videoHandler, subscriptionHandler, tokenService, cfg.MediaRoot)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
