package http

import (
	"errors"
	"net/http"

	"bingo-server/internal/game"
	"bingo-server/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Join or create a game
// @Description Quick play, create a private room, or join a private room by code
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.JoinRequest true "Join info"
// @Success 302
// @Router /join [post]
func JoinHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if req.PlayerName == "" {
			req.PlayerName = "John"
		}
		playerID := req.PlayerID
		if playerID == "" {
			playerID = uuid.NewString()
		}

		r, _, err := rm.Join(playerID, req.PlayerName, room.JoinRequest{
			CreateNew: req.CreateNew,
			GameCode:  req.GameCode,
		})
		if err != nil {
			switch {
			case errors.Is(err, room.ErrRoomNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game code"})
			case errors.Is(err, room.ErrRoomFull):
				c.JSON(http.StatusBadRequest, gin.H{"error": "room full"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.Redirect(http.StatusFound, "/game/"+r.Code+"?player_id="+playerID)
	}
}

// @Summary Get the room state for one player
// @Description Board, called numbers, completed lines and turn for the requesting player
// @Tags Game
// @Produce json
// @Param code path string true "Room code"
// @Param player_id query string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Router /game/{code} [get]
func GameStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Query("player_id")
		if playerID == "" {
			c.Redirect(http.StatusFound, "/join")
			return
		}
		snap, err := rm.Snapshot(c.Param("code"), playerID)
		if err != nil {
			c.Redirect(http.StatusFound, "/join")
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Make a move
// @Description Call the number at (row, col) of the player's board, or a random uncalled number when no cell is given
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body http.MoveRequest true "Move data"
// @Success 204
// @Router /game/{code}/make-move [post]
func MakeMoveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if req.PlayerID == "" {
			c.Redirect(http.StatusFound, "/join")
			return
		}

		var cell *game.Cell
		switch {
		case req.Row != nil && req.Col != nil:
			cell = &game.Cell{Row: *req.Row, Col: *req.Col}
		case req.Row != nil || req.Col != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": room.ErrInvalidMove.Error()})
			return
		}

		if err := rm.ApplyMove(c.Param("code"), req.PlayerID, cell); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// statusFor maps the rejection taxonomy onto HTTP statuses. Everything in
// it is a client-visible 400; anything unknown is a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, room.ErrPlayerNotFound),
		errors.Is(err, room.ErrNotYourTurn),
		errors.Is(err, room.ErrInvalidMove),
		errors.Is(err, room.ErrAlreadyCalled),
		errors.Is(err, room.ErrNoNumbersLeft),
		errors.Is(err, room.ErrGameOver):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
