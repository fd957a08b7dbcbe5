package app

import (
	"crypto/rand"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

const checkInKeyAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const checkInKeyLength = 5

// newCheckInKey generates the opaque token a hotel presents to unlock the
// payment card for a voucher.
func newCheckInKey() string {
	b := make([]byte, checkInKeyLength)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	for i := range b {
		b[i] = checkInKeyAlphabet[int(b[i])%len(checkInKeyAlphabet)]
	}
	return string(b)
}
