package http

import (
	"time"

	"bingo-server/internal/api/ws"
	"bingo-server/internal/config"
	"bingo-server/internal/room"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Realtime updates
	r.GET("/ws", hub.HandleWS)

	// Matchmaking and game surface
	r.POST("/join", JoinHandler(rm))
	r.GET("/game/:code", GameStateHandler(rm))
	r.POST("/game/:code/make-move", MakeMoveHandler(rm))

	r.GET("/healthz", HealthHandler())

	return r
}
