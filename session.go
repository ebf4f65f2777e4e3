package main

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Session binds one connection to at most one room and a display name, and
// dispatches its inbound requests. room is non-nil only while the client is
// present in that room's member set; the two are updated together on every
// join, leave, and disconnect.
type Session struct {
	registry *Registry
	metrics  *Metrics
	client   *Client

	room *Room
	name string
}

func NewSession(registry *Registry, metrics *Metrics, client *Client) *Session {
	return &Session{
		registry: registry,
		metrics:  metrics,
		client:   client,
	}
}

// ReadPump consumes the connection until it closes, then runs the disconnect
// cleanup. The cleanup runs exactly once per connection: this defer is the
// only exit path for both graceful and abrupt closes.
func (s *Session) ReadPump() {
	defer func() {
		s.disconnect()
		s.client.conn.Close()
	}()

	_ = s.client.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.client.conn.SetPongHandler(func(string) error {
		return s.client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error conn=%s: %v", s.client.connID, err)
			}
			return
		}
		s.handle(raw)
	}
}

// handle dispatches one inbound request. Every failure mode is local to this
// request: the connection stays open and later requests are processed.
func (s *Session) handle(raw []byte) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.reply(newError("Invalid JSON"))
		return
	}

	switch req.Action {
	case "create_room":
		s.handleCreateRoom()
	case "list_rooms":
		s.handleListRooms()
	case "join_room":
		s.handleJoinRoom(req)
	case "leave_room":
		s.handleLeaveRoom()
	case "chat":
		s.handleChat(req)
	case "typing":
		s.handleTyping("typing")
	case "stop_typing":
		s.handleTyping("stop_typing")
	default:
		s.reply(newError("Unknown action"))
	}
}

func (s *Session) handleCreateRoom() {
	roomID, pin := s.registry.CreateRoom()
	s.reply(newRoomCreated(roomID, pin))
}

func (s *Session) handleListRooms() {
	s.reply(newRoomList(s.registry.ListRooms()))
}

func (s *Session) handleJoinRoom(req Request) {
	pin := strings.TrimSpace(req.PIN)
	name := strings.TrimSpace(req.Username)
	if name == "" {
		name = "Guest"
	}

	room, ok := s.registry.Join(s.client, s.room, pin, name)
	if !ok {
		s.reply(newError("Invalid PIN: No room found"))
		return
	}
	s.room = room
	s.name = name
	log.Printf("conn %s joined room %s as %q", s.client.connID, room.id, name)

	s.reply(newJoinedRoom(room.id))
	room.Replay(s.client)
	s.broadcast(newStatus(name + " joined the room"))
}

// handleLeaveRoom confirms the leave to the sender even when it was never in
// a room; only the "left" status broadcast is conditional on an actual
// membership having been removed.
func (s *Session) handleLeaveRoom() {
	room := s.room
	var roomID, left string
	if room != nil {
		roomID = room.id
		left, _ = room.Remove(s.client)
	}

	s.reply(newLeftRoom(roomID))
	if left != "" {
		s.registry.Broadcast(room, newStatus(left+" left the room"), s.client)
	}
	if room != nil {
		s.registry.DeleteIfEmpty(room.id)
		log.Printf("conn %s left room %s", s.client.connID, room.id)
	}
	s.room = nil
}

func (s *Session) handleChat(req Request) {
	if s.room == nil {
		s.reply(newError("Join a room first"))
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return
	}

	user := s.name
	if user == "" {
		user = "Unknown"
	}

	payload := newChat(user, text)
	s.room.AppendHistory(payload)
	s.broadcast(payload)
	if s.metrics != nil {
		s.metrics.messagesRelayed.Inc()
	}
}

func (s *Session) handleTyping(eventType string) {
	if s.room == nil {
		return
	}
	s.broadcast(newTyping(eventType, s.name))
}

// disconnect mirrors leave_room's cleanup for connections that drop without
// sending one: remove from the room, tell the remaining members, delete the
// room if it emptied.
func (s *Session) disconnect() {
	s.client.Close()

	room := s.room
	s.room = nil
	if room == nil {
		return
	}

	name, _ := room.Remove(s.client)
	if name != "" {
		s.registry.Broadcast(room, newStatus(name+" left the room"), nil)
	}
	s.registry.DeleteIfEmpty(room.id)
	log.Printf("conn %s disconnected from room %s", s.client.connID, room.id)
}

func (s *Session) reply(data []byte) {
	s.client.trySend(data)
}

// broadcast fans out to the session's current room, excluding the session's
// own connection.
func (s *Session) broadcast(data []byte) {
	failed := s.registry.Broadcast(s.room, data, s.client)
	if failed > 0 && s.metrics != nil {
		s.metrics.deliveryFailures.Add(float64(failed))
	}
}
