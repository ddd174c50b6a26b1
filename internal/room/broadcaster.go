package room

// Broadcaster fans an event out to every connection subscribed to a room.
// Delivery is fire-and-forget; the manager never waits on it.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
}

// Store is the registry backing the manager. Rooms with a finished status
// are deleted, which is what keeps codes unique among live rooms.
type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	FindJoinablePublic() (*Room, bool)
}
