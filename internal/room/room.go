package room

import (
	"math/rand"
	"sync"
	"time"

	"bingo-server/internal/game"

	"github.com/gin-gonic/gin"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// MaxPlayers is fixed: bingo here is strictly a two-player duel.
const MaxPlayers = 2

type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Board     game.Board `json:"-"`
	Turn      bool       `json:"turn"`
	Connected bool       `json:"connected"`
	JoinedAt  time.Time  `json:"-"`
}

// Room is the unit of mutual exclusion: every read and write of called
// numbers, turn flags and status happens under mu, so concurrent moves on
// the same room are linearized while different rooms stay fully parallel.
type Room struct {
	Code      string    `json:"code"`
	Private   bool      `json:"private"`
	Pool      game.Pool `json:"-"`
	Called    []int     `json:"called_numbers"`
	Status    Status    `json:"status"`
	Players   []*Player `json:"players"`
	WinnerID  *string   `json:"winner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	calledSet     map[int]bool
	fullAnnounced bool
	rng           *rand.Rand
	mu            sync.Mutex
}

// event is a broadcast collected under the room lock and delivered after
// it is released, so fanout never blocks a move.
type event struct {
	action string
	data   gin.H
}

func newRoom(code string, private bool, rng *rand.Rand) *Room {
	return &Room{
		Code:      code,
		Private:   private,
		Pool:      game.NewPool(rng),
		Called:    []int{},
		Status:    StatusWaiting,
		calledSet: map[int]bool{},
		rng:       rng,
		CreatedAt: time.Now(),
	}
}

// Joinable reports whether the quick-play matchmaker may seat a second
// player here.
func (r *Room) Joinable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.Private && r.Status != StatusFinished && len(r.Players) < MaxPlayers
}

// addPlayer seats or re-seats a player. A known player ID rejoins in
// place, keeping its board and turn flag; a new player gets a fresh
// permutation of the room pool and the turn iff the room was empty.
// The second seat flips the room to active.
func (r *Room) addPlayer(playerID, name string) (*Player, []event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.findPlayer(playerID); p != nil {
		p.Name = name
		return p, nil, nil
	}
	if r.Status == StatusFinished {
		return nil, nil, ErrRoomNotFound
	}
	if len(r.Players) >= MaxPlayers {
		return nil, nil, ErrRoomFull
	}

	p := &Player{
		ID:       playerID,
		Name:     name,
		Board:    game.NewBoard(r.Pool, r.rng),
		Turn:     len(r.Players) == 0,
		JoinedAt: time.Now(),
	}
	r.Players = append(r.Players, p)

	var events []event
	if len(r.Players) == MaxPlayers {
		r.Status = StatusActive
		r.fullAnnounced = true
		events = append(events, event{action: "room_full", data: gin.H{
			"status":  r.Status,
			"players": r.playerRoster(),
		}})
	}
	return p, events, nil
}

// applyMove runs the whole move pipeline under the room lock: admission,
// number resolution, win detection for both players, turn toggling.
func (r *Room) applyMove(playerID string, cell *game.Cell) ([]event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if r.Status != StatusActive {
		return nil, ErrGameOver
	}
	if !p.Turn {
		return nil, ErrNotYourTurn
	}

	var number int
	if cell != nil {
		if !cell.InBounds() {
			return nil, ErrInvalidMove
		}
		number = p.Board[cell.Row][cell.Col]
	} else {
		remaining := r.remainingNumbers()
		if len(remaining) == 0 {
			return nil, ErrNoNumbersLeft
		}
		number = remaining[r.rng.Intn(len(remaining))]
	}

	if r.calledSet[number] {
		return nil, ErrAlreadyCalled
	}
	r.Called = append(r.Called, number)
	r.calledSet[number] = true

	opponent := r.opponentOf(playerID)
	playerLines, _ := game.CompletedLines(p.Board, r.calledSet)
	opponentLines := 0
	if opponent != nil {
		opponentLines, _ = game.CompletedLines(opponent.Board, r.calledSet)
	}

	// The called number can complete lines on both boards at once, so the
	// mover wins ties but the opponent can win off the mover's call.
	if playerLines >= game.WinningLines {
		return []event{r.finishWith(p)}, nil
	}
	if opponent != nil && opponentLines >= game.WinningLines {
		return []event{r.finishWith(opponent)}, nil
	}

	// Toggle both flags in the same critical section so there is never a
	// moment with zero or two turn owners.
	p.Turn = !p.Turn
	if opponent != nil {
		opponent.Turn = !opponent.Turn
	}

	nextTurn := ""
	if opponent != nil {
		nextTurn = opponent.ID
	}
	return []event{{action: "state_changed", data: gin.H{
		"called_number":  number,
		"called_numbers": append([]int(nil), r.Called...),
		"next_turn":      nextTurn,
	}}}, nil
}

// finishWith ends the game in the winner's favor. Lock must be held.
func (r *Room) finishWith(winner *Player) event {
	r.Status = StatusFinished
	id := winner.ID
	r.WinnerID = &id
	for _, p := range r.Players {
		p.Turn = false
	}
	_, lines := game.CompletedLines(winner.Board, r.calledSet)
	return event{action: "winner_announced", data: gin.H{
		"winner_id":      id,
		"called_numbers": append([]int(nil), r.Called...),
		"line_numbers":   lines,
	}}
}

// markConnected flags a player's connection state. When the second
// player's connection arrives after the room went active, the room_full
// announce goes out here exactly once.
func (r *Room) markConnected(playerID string) ([]event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	p.Connected = true

	if r.Status == StatusActive && !r.fullAnnounced {
		r.fullAnnounced = true
		return []event{{action: "room_full", data: gin.H{
			"status":  r.Status,
			"players": r.playerRoster(),
		}}}, nil
	}
	return nil, nil
}

// markDisconnected applies the teardown rules: an active room is
// force-finished, a waiting room dies with its only player, a finished
// room is removable once nobody is connected. The returned removable flag
// tells the manager whether to drop the room from the registry after the
// events have been handed to the broadcaster.
func (r *Room) markDisconnected(playerID string) (events []event, removable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil {
		return nil, false
	}
	p.Connected = false

	switch r.Status {
	case StatusActive:
		r.Status = StatusFinished
		for _, pl := range r.Players {
			pl.Turn = false
		}
		return []event{{action: "game_over", data: gin.H{
			"reason": "player_left",
		}}}, true
	case StatusWaiting:
		return nil, true
	default:
		return nil, !r.anyConnected()
	}
}

// snapshot renders the room from one player's point of view: their own
// board, the shared called numbers and their completed lines.
func (r *Room) snapshot(playerID string) (gin.H, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	count, lines := game.CompletedLines(p.Board, r.calledSet)

	snap := gin.H{
		"room_code":       r.Code,
		"status":          r.Status,
		"board":           p.Board.Rows(),
		"called_numbers":  append([]int(nil), r.Called...),
		"your_turn":       p.Turn,
		"completed_lines": count,
		"line_numbers":    lines,
		"players":         r.playerRoster(),
	}
	if r.WinnerID != nil {
		snap["winner_id"] = *r.WinnerID
	}
	return snap, nil
}

func (r *Room) findPlayer(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) opponentOf(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID != playerID {
			return p
		}
	}
	return nil
}

func (r *Room) remainingNumbers() []int {
	remaining := make([]int, 0, len(r.Pool)-len(r.Called))
	for _, n := range r.Pool {
		if !r.calledSet[n] {
			remaining = append(remaining, n)
		}
	}
	return remaining
}

func (r *Room) anyConnected() bool {
	for _, p := range r.Players {
		if p.Connected {
			return true
		}
	}
	return false
}

func (r *Room) playerRoster() []gin.H {
	roster := make([]gin.H, 0, len(r.Players))
	for _, p := range r.Players {
		roster = append(roster, gin.H{
			"id":        p.ID,
			"name":      p.Name,
			"turn":      p.Turn,
			"connected": p.Connected,
		})
	}
	return roster
}
