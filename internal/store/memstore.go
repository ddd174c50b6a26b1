package store

import (
	"sync"

	"bingo-server/internal/room"
)

// MemoryStore keeps live rooms in process memory. Rooms do not survive a
// restart; finished rooms are deleted rather than archived.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// FindJoinablePublic returns any public room with an open seat. Map
// iteration order makes the pick arbitrary, which is all the matchmaker
// needs.
func (m *MemoryStore) FindJoinablePublic() (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if r.Joinable() {
			return r, true
		}
	}
	return nil, false
}
