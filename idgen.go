package main

import (
	"crypto/rand"
	"math/big"
)

const (
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pinAlphabet    = "0123456789"

	roomIDLength = 6
	pinLength    = 4
)

// newRoomID returns a 6-character uppercase-alphanumeric room identifier.
// Uniqueness against existing rooms is not checked.
func newRoomID() string {
	return randomString(roomIDAlphabet, roomIDLength)
}

// newPIN returns a 4-digit numeric join secret. PINs are not checked for
// uniqueness across rooms; findByPIN resolves duplicates first-found-wins.
func newPIN() string {
	return randomString(pinAlphabet, pinLength)
}

func randomString(alphabet string, n int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken
			panic(err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}
