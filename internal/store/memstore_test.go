package store_test

import (
	"math/rand"
	"testing"

	"bingo-server/internal/room"
	"bingo-server/internal/store"

	"go.uber.org/zap"
)

func newManager(mem *store.MemoryStore) *room.Manager {
	return room.NewManager(mem, zap.NewNop(), rand.New(rand.NewSource(7)))
}

func TestSaveGetDelete(t *testing.T) {
	mem := store.NewMemoryStore()
	m := newManager(mem)

	r, err := m.CreateRoom(false)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := mem.GetRoom(r.Code)
	if !ok || got != r {
		t.Fatalf("GetRoom(%q) = %v, %v", r.Code, got, ok)
	}

	mem.DeleteRoom(r.Code)
	if _, ok := mem.GetRoom(r.Code); ok {
		t.Fatal("room still present after delete")
	}
	// Deleting twice is harmless.
	mem.DeleteRoom(r.Code)
}

func TestFindJoinablePublic(t *testing.T) {
	mem := store.NewMemoryStore()
	m := newManager(mem)

	if _, ok := mem.FindJoinablePublic(); ok {
		t.Fatal("empty store reported a joinable room")
	}

	// A private room with an open seat must not match.
	if _, _, err := m.Join("h", "Host", room.JoinRequest{CreateNew: true}); err != nil {
		t.Fatal(err)
	}
	if _, ok := mem.FindJoinablePublic(); ok {
		t.Fatal("private room offered to quick play")
	}

	pub, _, err := m.Join("a", "Alice", room.JoinRequest{})
	if err != nil {
		t.Fatal(err)
	}
	found, ok := mem.FindJoinablePublic()
	if !ok || found.Code != pub.Code {
		t.Fatalf("FindJoinablePublic = %v, %v; want %s", found, ok, pub.Code)
	}

	// Filling the room removes it from matchmaking.
	if _, _, err := m.Join("b", "Bob", room.JoinRequest{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := mem.FindJoinablePublic(); ok {
		t.Fatal("full room offered to quick play")
	}
}
