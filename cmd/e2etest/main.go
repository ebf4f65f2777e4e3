// E2E test: drives two WebSocket clients through a live relay —
// create room, join by PIN, chat, disconnect.
// Usage: go run ./cmd/e2etest -relay ws://localhost:6789/ws
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

var relayURL = flag.String("relay", "ws://localhost:6789/ws", "relay WebSocket URL")

type event struct {
	Type    string `json:"type"`
	RoomID  string `json:"room_id"`
	PIN     string `json:"pin"`
	User    string `json:"user"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	// --- Connect Alice ---
	log.Println(">> Connecting Alice...")
	alice, _, err := websocket.DefaultDialer.Dial(*relayURL, nil)
	if err != nil {
		log.Fatal("alice connect:", err)
	}
	defer alice.Close()
	log.Println("   Alice connected")

	// --- Alice creates a room ---
	log.Println(">> Alice creating room...")
	send(alice, map[string]string{"action": "create_room"})
	created := recv(alice)
	if created.Type != "room_created" || len(created.RoomID) != 6 || len(created.PIN) != 4 {
		log.Fatalf("unexpected create response: %+v", created)
	}
	log.Printf("   Room %s created, PIN %s", created.RoomID, created.PIN)

	// --- Alice joins her room ---
	log.Println(">> Alice joining by PIN...")
	send(alice, map[string]string{"action": "join_room", "pin": created.PIN, "username": "Alice"})
	joined := recv(alice)
	if joined.Type != "joined_room" || joined.RoomID != created.RoomID {
		log.Fatalf("unexpected join response: %+v", joined)
	}
	log.Println("   Alice joined")

	// --- Connect Bob and join the same room ---
	log.Println(">> Connecting Bob...")
	bob, _, err := websocket.DefaultDialer.Dial(*relayURL, nil)
	if err != nil {
		log.Fatal("bob connect:", err)
	}
	defer bob.Close()

	send(bob, map[string]string{"action": "join_room", "pin": created.PIN, "username": "Bob"})
	if ev := recv(bob); ev.Type != "joined_room" {
		log.Fatalf("unexpected bob join response: %+v", ev)
	}
	log.Println("   Bob joined")

	if ev := recv(alice); ev.Type != "status" || ev.Message != "Bob joined the room" {
		log.Fatalf("alice expected join status, got: %+v", ev)
	}
	log.Println("   Alice saw Bob join")

	// --- Alice chats, Bob receives ---
	log.Println(">> Alice sending chat...")
	send(alice, map[string]string{"action": "chat", "message": "hello from Alice"})
	chat := recv(bob)
	if chat.Type != "chat" || chat.User != "Alice" || chat.Message != "hello from Alice" || chat.Time == "" {
		log.Fatalf("unexpected chat event: %+v", chat)
	}
	log.Printf("   Bob received: [%s] %s: %s", chat.Time, chat.User, chat.Message)

	// --- Bob disconnects abruptly, Alice sees the leave ---
	log.Println(">> Bob disconnecting...")
	bob.Close()
	if ev := recv(alice); ev.Type != "status" || ev.Message != "Bob left the room" {
		log.Fatalf("alice expected leave status, got: %+v", ev)
	}
	log.Println("   Alice saw Bob leave")

	log.Println("E2E TEST PASSED")
	os.Exit(0)
}

func send(conn *websocket.Conn, req map[string]string) {
	data, _ := json.Marshal(req)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Fatal("send:", err)
	}
}

func recv(conn *websocket.Conn) event {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Fatal("recv:", err)
	}
	var ev event
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Fatalf("recv decode %q: %v", data, err)
	}
	return ev
}
