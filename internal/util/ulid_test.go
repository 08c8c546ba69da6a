package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewULID()
		require.Len(t, id, ulid.EncodedSize)
		_, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate ULID %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewULID_SameMillisecondNotSequential(t *testing.T) {
	compared := 0
	prev := ulid.MustParseStrict(NewULID())
	for i := 0; i < 1000 && compared < 20; i++ {
		cur := ulid.MustParseStrict(NewULID())
		if cur.Time() == prev.Time() {
			compared++
			pe, ce := prev.Entropy(), cur.Entropy()
			assert.NotEqual(t, pe[:6], ce[:6], "ids %s and %s share an entropy prefix", prev, cur)
		}
		prev = cur
	}
}
