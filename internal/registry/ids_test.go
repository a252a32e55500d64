package registry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGeneratorSkipsNonIncreasing(t *testing.T) {
	seq := []uuid.UUID{
		uuid.MustParse("01900000-0000-7000-8000-000000000002"),
		uuid.MustParse("01900000-0000-7000-8000-000000000001"), // clock stepped back
		uuid.MustParse("01900000-0000-7000-8000-000000000002"), // same as before
		uuid.MustParse("01900000-0000-7000-8000-000000000003"),
	}
	i := 0
	g := &IDGenerator{gen: func() (uuid.UUID, error) {
		u := seq[i]
		i++
		return u, nil
	}}

	first, err := g.Next()
	require.NoError(t, err)
	second, err := g.Next()
	require.NoError(t, err)

	assert.Equal(t, "01900000-0000-7000-8000-000000000002", first)
	assert.Equal(t, "01900000-0000-7000-8000-000000000003", second)
}

func TestIDGeneratorGivesUpOnStuckClock(t *testing.T) {
	stuck := uuid.MustParse("01900000-0000-7000-8000-000000000001")
	g := &IDGenerator{gen: func() (uuid.UUID, error) { return stuck, nil }}

	_, err := g.Next()
	require.NoError(t, err)
	_, err = g.Next()
	require.Error(t, err)
}

func TestIDGeneratorObserve(t *testing.T) {
	g := NewIDGenerator()
	g.Observe("1718049382123", "not-a-uuid", "")

	id, err := g.Next()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	future := "ffffffff-ffff-7fff-bfff-ffffffffffff"
	g.Observe(future)
	_, err = g.Next()
	assert.Error(t, err, "nothing can sort after the largest id")
}
