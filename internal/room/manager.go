package room

import (
	"math/rand"
	"sync"

	"bingo-server/internal/game"

	"go.uber.org/zap"
)

// codeAlphabet matches the room code contract: 6 uppercase letters or
// digits.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	codeLength      = 6
	maxCodeAttempts = 1000
)

// JoinRequest mirrors the join form: a brand-new private room, a named
// private room, or quick play when both fields are empty.
type JoinRequest struct {
	CreateNew bool
	GameCode  string
}

// Manager is the room registry and matchmaker. It owns code generation
// and the join/create flow; per-room mutation lives on Room itself.
type Manager struct {
	store Store
	hub   Broadcaster
	log   *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewManager(store Store, logger *zap.Logger, rng *rand.Rand) *Manager {
	return &Manager{store: store, log: logger, rng: rng}
}

// SetHub wires the broadcaster after construction; the hub needs the
// manager and the manager needs the hub.
func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

// CreateRoom generates a unique code, draws the shared number pool and
// registers a waiting room.
func (m *Manager) CreateRoom(private bool) (*Room, error) {
	code, err := m.uniqueCode()
	if err != nil {
		return nil, err
	}
	r := newRoom(code, private, m.roomRand())
	m.store.SaveRoom(r)
	m.log.Info("room created",
		zap.String("room", code),
		zap.Bool("private", private),
	)
	return r, nil
}

// Join resolves a join request to a (room, player) pair.
func (m *Manager) Join(playerID, playerName string, req JoinRequest) (*Room, *Player, error) {
	if req.CreateNew {
		r, err := m.CreateRoom(true)
		if err != nil {
			return nil, nil, err
		}
		return m.seat(r, playerID, playerName)
	}

	if req.GameCode != "" {
		r, ok := m.store.GetRoom(req.GameCode)
		if !ok || !r.Private {
			return nil, nil, ErrRoomNotFound
		}
		return m.seat(r, playerID, playerName)
	}

	// Quick play. A found room can fill up between the scan and the seat
	// attempt, so retry the scan until a seat sticks.
	for {
		r, ok := m.store.FindJoinablePublic()
		if !ok {
			created, err := m.CreateRoom(false)
			if err != nil {
				return nil, nil, err
			}
			r = created
		}
		room, player, err := m.seat(r, playerID, playerName)
		if err == ErrRoomFull {
			continue
		}
		return room, player, err
	}
}

func (m *Manager) seat(r *Room, playerID, playerName string) (*Room, *Player, error) {
	p, events, err := r.addPlayer(playerID, playerName)
	if err != nil {
		return nil, nil, err
	}
	m.log.Info("player joined",
		zap.String("room", r.Code),
		zap.String("player", playerID),
	)
	m.deliver(r.Code, events)
	return r, p, nil
}

// Get looks a room up by code.
func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

// ApplyMove validates and applies one move, then fans out the resulting
// state change after the room lock has been released.
func (m *Manager) ApplyMove(roomCode, playerID string, cell *game.Cell) error {
	r, ok := m.store.GetRoom(roomCode)
	if !ok {
		return ErrRoomNotFound
	}
	events, err := r.applyMove(playerID, cell)
	if err != nil {
		return err
	}
	m.deliver(roomCode, events)
	return nil
}

// Snapshot renders the room for one player.
func (m *Manager) Snapshot(roomCode, playerID string) (map[string]interface{}, error) {
	r, ok := m.store.GetRoom(roomCode)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r.snapshot(playerID)
}

// PlayerConnected marks the player's connection live and, when both seats
// are taken, announces the full room.
func (m *Manager) PlayerConnected(roomCode, playerID string) error {
	r, ok := m.store.GetRoom(roomCode)
	if !ok {
		return ErrRoomNotFound
	}
	events, err := r.markConnected(playerID)
	if err != nil {
		return err
	}
	m.deliver(roomCode, events)
	return nil
}

// PlayerDisconnected applies the teardown rules. A disconnect racing an
// in-flight move is safe: the move finishes under the room lock first,
// then the room observes the dropped connection.
func (m *Manager) PlayerDisconnected(roomCode, playerID string) {
	r, ok := m.store.GetRoom(roomCode)
	if !ok {
		return
	}
	events, removable := r.markDisconnected(playerID)
	m.deliver(roomCode, events)
	if removable {
		m.store.DeleteRoom(roomCode)
		m.log.Info("room removed",
			zap.String("room", roomCode),
			zap.String("player", playerID),
		)
	}
}

func (m *Manager) deliver(roomCode string, events []event) {
	if m.hub == nil {
		return
	}
	for _, e := range events {
		m.hub.Broadcast(roomCode, e.action, e.data)
	}
}

// uniqueCode retries against live rooms. Exhausting the attempts on a
// 36^6 space means something is badly misconfigured, so it surfaces as an
// error rather than looping forever.
func (m *Manager) uniqueCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := m.randCode(codeLength)
		if _, exists := m.store.GetRoom(code); !exists {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (m *Manager) randCode(n int) string {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[m.rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// roomRand derives an independent source per room so auto-picks and board
// shuffles run under the room's own lock without contending on the
// manager's source.
func (m *Manager) roomRand() *rand.Rand {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return rand.New(rand.NewSource(m.rng.Int63()))
}
