package internal

import (
	"crypto/rand"
	"encoding/base64"
	"io"
)

// SessionIDSize is the number of random bytes behind a session identifier (128 bits).
const SessionIDSize = 16

// SessionIDLength is the encoded length of a session identifier.
var SessionIDLength = base64.RawURLEncoding.EncodedLen(SessionIDSize)

// NewSessionID reads SessionIDSize bytes from r and encodes them as unpadded
// base64url. A nil reader uses crypto/rand.
func NewSessionID(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	var sid [SessionIDSize]byte
	if _, err := io.ReadFull(r, sid[:]); err != nil {
		return "", err
	}
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(sid[:]), nil
}
