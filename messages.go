package main

import (
	"encoding/json"
	"time"
)

// Request is the single inbound payload shape. Action selects the handler;
// the remaining fields are action-specific and ignored otherwise.
type Request struct {
	Action   string `json:"action"`
	PIN      string `json:"pin"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// RoomInfo is one entry of a room_list response.
type RoomInfo struct {
	RoomID string `json:"room_id"`
	Users  int    `json:"users"`
}

type roomCreatedEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
	PIN    string `json:"pin"`
}

type roomListEvent struct {
	Type  string     `json:"type"`
	Rooms []RoomInfo `json:"rooms"`
}

type joinedRoomEvent struct {
	Type    string `json:"type"`
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

type messageEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type chatEvent struct {
	Type    string `json:"type"`
	User    string `json:"user"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type typingEvent struct {
	Type string `json:"type"`
	User string `json:"user"`
}

func marshalEvent(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// all event types marshal without error
		panic(err)
	}
	return b
}

func newRoomCreated(roomID, pin string) []byte {
	return marshalEvent(roomCreatedEvent{Type: "room_created", RoomID: roomID, PIN: pin})
}

func newRoomList(rooms []RoomInfo) []byte {
	return marshalEvent(roomListEvent{Type: "room_list", Rooms: rooms})
}

func newJoinedRoom(roomID string) []byte {
	return marshalEvent(joinedRoomEvent{Type: "joined_room", RoomID: roomID, Message: "Joined room " + roomID})
}

func newLeftRoom(roomID string) []byte {
	text := "You left the room"
	if roomID != "" {
		text = "You left room " + roomID
	}
	return marshalEvent(messageEvent{Type: "left_room", Message: text})
}

func newStatus(text string) []byte {
	return marshalEvent(messageEvent{Type: "status", Message: text})
}

func newError(text string) []byte {
	return marshalEvent(messageEvent{Type: "error", Message: text})
}

// newChat serializes a chat event stamped with the current UTC time in
// ISO 8601 form with a "Z" suffix. The serialized bytes are what gets stored
// in room history and replayed verbatim to later joiners.
func newChat(user, text string) []byte {
	return marshalEvent(chatEvent{
		Type:    "chat",
		User:    user,
		Message: text,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

func newTyping(eventType, user string) []byte {
	return marshalEvent(typingEvent{Type: eventType, User: user})
}
