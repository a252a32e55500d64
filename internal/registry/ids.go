package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out time-ordered guest IDs. Each ID sorts strictly
// after the previous one, even when two are created in the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last string
	gen  func() (uuid.UUID, error)
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{gen: uuid.NewV7}
}

// Next returns a fresh ID
func (g *IDGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// uuid.NewV7 is already monotonic within the process; the loop only
	// matters if the wall clock steps backwards.
	for attempt := 0; attempt < 1000; attempt++ {
		u, err := g.gen()
		if err != nil {
			return "", fmt.Errorf("failed to generate guest id: %w", err)
		}
		id := u.String()
		if id > g.last {
			g.last = id
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate guest id: clock did not advance past %s", g.last)
}

// Observe records ids that already exist (e.g. loaded from storage) so that
// new ids keep sorting after them. Legacy non-UUID ids are ignored; they
// cannot collide with generated ones.
func (g *IDGenerator) Observe(ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
			continue
		}
		if id > g.last {
			g.last = id
		}
	}
}
