package main

import (
	"strings"
	"testing"
)

func TestNewRoomID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := newRoomID()
		if len(id) != roomIDLength {
			t.Fatalf("room id %q has length %d, want %d", id, len(id), roomIDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(roomIDAlphabet, r) {
				t.Fatalf("room id %q contains %q, outside alphabet", id, r)
			}
		}
	}
}

func TestNewPIN(t *testing.T) {
	for i := 0; i < 100; i++ {
		pin := newPIN()
		if len(pin) != pinLength {
			t.Fatalf("pin %q has length %d, want %d", pin, len(pin), pinLength)
		}
		for _, r := range pin {
			if r < '0' || r > '9' {
				t.Fatalf("pin %q contains non-digit %q", pin, r)
			}
		}
	}
}
