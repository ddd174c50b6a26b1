package ws

import "bingo-server/internal/game"

// RoomManager is the slice of the room manager the hub needs.
type RoomManager interface {
	Snapshot(roomCode, playerID string) (map[string]interface{}, error)
	ApplyMove(roomCode, playerID string, cell *game.Cell) error
	PlayerConnected(roomCode, playerID string) error
	PlayerDisconnected(roomCode, playerID string)
}
