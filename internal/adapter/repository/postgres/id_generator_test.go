package postgres

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_SortsWithinMillisecond(t *testing.T) {
	at := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	gen := newULIDGenerator(func() time.Time { return at })

	prev := gen.Generate()
	for i := 0; i < 100; i++ {
		next := gen.Generate()
		require.Less(t, prev, next)
		prev = next
	}

	id, err := ulid.Parse(prev)
	require.NoError(t, err)
	assert.True(t, at.Equal(ulid.Time(id.Time())))
}
