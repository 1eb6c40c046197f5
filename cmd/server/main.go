package main

import (
	"context"

	"github.com/formpulse/survey-intake-backend/internal/config"
	"github.com/formpulse/survey-intake-backend/internal/handlers"
	"github.com/formpulse/survey-intake-backend/internal/storage"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.StoreBackend, err)
	}
	defer store.Close()

	app := handlers.NewApp(store)

	log.Infof("using %s store", cfg.StoreBackend)
	log.Infof("server starting on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
