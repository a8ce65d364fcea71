package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mercadinho/internal/api"
	"mercadinho/internal/api/view"
	"mercadinho/internal/app/service"
	"mercadinho/internal/domain/repository"
	"mercadinho/internal/platform/config"
	"mercadinho/internal/platform/database"
	"mercadinho/internal/platform/sessionstore"
	"mercadinho/internal/session"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded.")

	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Migrations: %v", err)
	}

	rdb, err := sessionstore.Connect(cfg)
	if err != nil {
		log.Fatalf("Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	userRepo := repository.NewPgUserRepository(db)
	itemRepo := repository.NewPgItemRepository(db)

	authService := service.NewAuthService(userRepo, cfg.BcryptCost)
	itemService := service.NewItemService(itemRepo)

	sessions := session.NewManager(
		session.NewRedisStore(rdb, cfg.SessionTTL),
		session.Options{Secret: cfg.SecretKey, TTL: cfg.SessionTTL},
	)

	views, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("Templates: %v", err)
	}

	router := api.NewRouter(sessions, authService, itemService, views)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", cfg.Port, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
