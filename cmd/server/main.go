package main

import (
	"math/rand"
	"time"

	httpapi "bingo-server/internal/api/http"
	"bingo-server/internal/api/ws"
	"bingo-server/internal/config"
	"bingo-server/internal/room"
	"bingo-server/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using environment variables")
	}
	cfg := config.Load()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, logger, rng)
	hub := ws.NewHub(rm, logger)
	rm.SetHub(hub)

	r := httpapi.NewRouter(rm, hub, cfg, logger)

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
