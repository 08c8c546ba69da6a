package util

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
// Each call draws fresh entropy from crypto/rand, so ids minted in the same
// millisecond do not reveal each other.
func NewULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
