package main

import (
	"log"
	"sync"
)

// Registry owns the room map. All membership transitions (create, switch,
// leave, failed-delivery cleanup) go through it so that a connection is a
// member of at most one room at any observation point.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom generates an id and PIN, inserts an empty room, and returns
// both. Neither value is checked for collision with existing rooms; a
// duplicated PIN makes FindByPIN resolve to whichever room the scan hits
// first.
func (g *Registry) CreateRoom() (roomID, pin string) {
	roomID = newRoomID()
	pin = newPIN()

	g.mu.Lock()
	g.rooms[roomID] = NewRoom(roomID, pin)
	g.mu.Unlock()

	log.Printf("room %s created", roomID)
	return roomID, pin
}

// ListRooms snapshots all live rooms with their member counts. Order follows
// map iteration and is unspecified.
func (g *Registry) ListRooms() []RoomInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]RoomInfo, 0, len(g.rooms))
	for id, room := range g.rooms {
		out = append(out, RoomInfo{RoomID: id, Users: room.MemberCount()})
	}
	return out
}

// FindByPIN scans all rooms for a matching PIN, first match wins.
func (g *Registry) FindByPIN(pin string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, room := range g.rooms {
		if room.pin == pin {
			return room, true
		}
	}
	return nil, false
}

// Join resolves pin and moves c into the matching room in one locked step,
// first removing it from old when set. The old room is deleted if the removal
// emptied it. Between the removal and the insertion c belongs to no room; it
// never belongs to two. Resolving the pin under the same lock means c can
// only ever be inserted into a room the registry still holds: a room deleted
// after an earlier lookup no longer matches.
func (g *Registry) Join(c *Client, old *Room, pin, name string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var room *Room
	for _, r := range g.rooms {
		if r.pin == pin {
			room = r
			break
		}
	}
	if room == nil {
		return nil, false
	}

	if old != nil && old != room {
		old.Remove(c)
		g.deleteIfEmptyLocked(old.id)
	}
	room.Add(c, name)
	return room, true
}

// DeleteIfEmpty removes the room iff its member set is empty. Idempotent,
// no-op when the id is absent.
func (g *Registry) DeleteIfEmpty(roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteIfEmptyLocked(roomID)
}

func (g *Registry) deleteIfEmptyLocked(roomID string) {
	room, ok := g.rooms[roomID]
	if !ok || room.MemberCount() > 0 {
		return
	}
	delete(g.rooms, roomID)
	log.Printf("room %s destroyed (no members)", roomID)
}

// Broadcast fans data out to room's members except exclude, then cleans up:
// members whose delivery failed were already dropped from the member set by
// the room, and the room itself is deleted if that emptied it. Returns the
// number of members removed for failed delivery.
func (g *Registry) Broadcast(room *Room, data []byte, exclude *Client) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := room.Broadcast(data, exclude)
	if removed > 0 {
		log.Printf("room %s: dropped %d unreachable member(s)", room.id, removed)
		g.deleteIfEmptyLocked(room.id)
	}
	return removed
}

func (g *Registry) RoomCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}
