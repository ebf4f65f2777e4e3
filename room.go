package main

import "sync"

// historyLimit caps per-room retained chat events. The oldest entry is
// evicted when an append would exceed it.
const historyLimit = 50

type Room struct {
	id  string
	pin string

	mu      sync.Mutex
	members map[*Client]string // connection → display name
	history [][]byte           // serialized chat events, oldest first
}

func NewRoom(id, pin string) *Room {
	return &Room{
		id:      id,
		pin:     pin,
		members: make(map[*Client]string),
	}
}

func (r *Room) Add(c *Client, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[c] = name
}

// Remove deletes c from the member set and returns the display name it was
// registered under. ok is false when c was not a member.
func (r *Room) Remove(c *Client) (name string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok = r.members[c]
	delete(r.members, c)
	return name, ok
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Broadcast attempts delivery to every member except exclude. Failures are
// isolated per member; failed members are collected during the pass and
// removed from the member set only after the iteration completes. Returns
// the number of members removed. The caller is responsible for deleting the
// room if it emptied.
func (r *Room) Broadcast(data []byte, exclude *Client) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var dead []*Client
	for c := range r.members {
		if c == exclude {
			continue
		}
		if !c.trySend(data) {
			dead = append(dead, c)
		}
	}
	for _, c := range dead {
		delete(r.members, c)
	}
	return len(dead)
}

// AppendHistory stores an already-serialized chat event, evicting the oldest
// entry once the cap is reached.
func (r *Room) AppendHistory(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, data)
	if len(r.history) > historyLimit {
		r.history = r.history[1:]
	}
}

// Replay sends every stored history entry, in append order, to c only.
func (r *Room) Replay(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.history {
		c.trySend(entry)
	}
}

// History returns a copy of the stored entries, oldest first.
func (r *Room) History() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.history))
	copy(out, r.history)
	return out
}
