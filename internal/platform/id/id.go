package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers. New is used for sessions and
// deck items; NewShort for queue slot ids, which appear in persisted
// JSON often enough that the shorter form keeps the files readable.
type Generator interface {
	New() string
	NewShort() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func (RandomHex) NewShort() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
