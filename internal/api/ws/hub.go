package ws

import (
	"net/http"
	"sync"

	"bingo-server/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks which connections are subscribed to which room and fans
// events out to them. Subscription bookkeeping runs under the hub's own
// lock, never a room's.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
	rm    RoomManager
	log   *zap.Logger
}

func NewHub(rm RoomManager, logger *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		rm:    rm,
		log:   logger,
	}
}

// HandleWS upgrades the connection, subscribes it to its room, pushes an
// initial per-player snapshot and then reads move requests until the
// connection drops.
func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	playerID := c.Query("player_id")
	if roomCode == "" || playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_code and player_id required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(conn)
	h.subscribe(roomCode, cl)
	go cl.writePump()

	defer func() {
		h.unsubscribe(roomCode, cl)
		cl.close()
		h.rm.PlayerDisconnected(roomCode, playerID)
	}()

	if err := h.rm.PlayerConnected(roomCode, playerID); err != nil {
		cl.enqueue(envelope{Action: "error", Data: gin.H{"error": err.Error()}})
		return
	}
	if snap, err := h.rm.Snapshot(roomCode, playerID); err == nil {
		cl.enqueue(envelope{Action: "state", Data: snap})
	}

	h.log.Info("websocket connected",
		zap.String("room", roomCode),
		zap.String("player", playerID),
	)

	for {
		var msg struct {
			Action string `json:"action"`
			Data   struct {
				Row *int `json:"row"`
				Col *int `json:"col"`
			} `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Action {
		case "make_move":
			var cell *game.Cell
			if msg.Data.Row != nil && msg.Data.Col != nil {
				cell = &game.Cell{Row: *msg.Data.Row, Col: *msg.Data.Col}
			}
			if err := h.rm.ApplyMove(roomCode, playerID, cell); err != nil {
				// Rejections go back to the offender only.
				cl.enqueue(envelope{Action: "error", Data: gin.H{"error": err.Error()}})
			}
		default:
			h.log.Debug("unknown websocket action",
				zap.String("action", msg.Action),
				zap.String("room", roomCode),
			)
		}
	}
}

// Broadcast delivers an event to every connection subscribed to the room.
// Enqueueing is non-blocking per connection.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	for cl := range clients {
		if !cl.enqueue(envelope{Action: action, Data: data}) {
			h.log.Warn("dropped broadcast for slow client",
				zap.String("room", roomCode),
				zap.String("action", action),
			)
		}
	}
}

func (h *Hub) subscribe(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*client]struct{})
	}
	h.rooms[roomCode][cl] = struct{}{}
}

func (h *Hub) unsubscribe(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[roomCode]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.rooms, roomCode)
		}
	}
}
