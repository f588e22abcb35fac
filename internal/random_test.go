package internal

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestNewSessionIDLengthAndAlphabet(t *testing.T) {
	id, err := NewSessionID(nil)
	if err != nil {
		t.Fatalf("new session id: %v", err)
	}
	if len(id) != SessionIDLength {
		t.Fatalf("expected length %d, got %d (%q)", SessionIDLength, len(id), id)
	}
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for _, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			t.Fatalf("unexpected character %q in %q", c, id)
		}
	}
}

func TestNewSessionIDDeterministicReader(t *testing.T) {
	seed := bytes.Repeat([]byte{0xAB}, SessionIDSize*2)

	a, err := NewSessionID(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("first id: %v", err)
	}
	b, err := NewSessionID(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("second id: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical ids from identical readers, got %q and %q", a, b)
	}

	raw, err := base64.RawURLEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(raw, seed[:SessionIDSize]) {
		t.Fatalf("decoded bytes mismatch: %x", raw)
	}
}

func TestNewSessionIDShortReader(t *testing.T) {
	_, err := NewSessionID(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("expected error from short reader")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestNewSessionIDReaderError(t *testing.T) {
	if _, err := NewSessionID(failingReader{}); err == nil {
		t.Fatal("expected reader error to propagate")
	}
}

func TestFingerprint(t *testing.T) {
	if Fingerprint("") != "" {
		t.Fatal("expected empty fingerprint for empty id")
	}
	a := Fingerprint("sid-1")
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", a)
	}
	if a != Fingerprint("sid-1") {
		t.Fatal("fingerprint not stable")
	}
	if a == Fingerprint("sid-2") {
		t.Fatal("distinct ids share a fingerprint")
	}
	if strings.Contains(a, "sid") {
		t.Fatal("fingerprint leaks identifier")
	}
}
