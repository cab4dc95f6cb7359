package cross

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Manager owns every Cross, indexed by id — the same id-map layout the teacher repo uses for each entity manager (see
// entity/road/manager.go in the teacher repo).
type Manager struct {
	byID map[int32]*Cross
}

// NewManager creates an empty Cross manager.
func NewManager() *Manager {
	return &Manager{byID: make(map[int32]*Cross)}
}

// Add registers a cross. Adding a duplicate id is a caller error.
func (m *Manager) Add(c *Cross) error {
	if _, ok := m.byID[c.ID]; ok {
		return fmt.Errorf("cross: duplicate cross id %d", c.ID)
	}
	m.byID[c.ID] = c
	return nil
}

// Get returns the cross with the given id, or nil if absent.
func (m *Manager) Get(id int32) *Cross {
	return m.byID[id]
}

// GetOrError returns the cross with the given id, or an error if absent.
func (m *Manager) GetOrError(id int32) (*Cross, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("cross: no such cross %d", id)
	}
	return c, nil
}

// IDs returns every cross id in ascending order — the iteration order
// required by the scheduler's outer loop (spec.md §4.5).
func (m *Manager) IDs() []int32 {
	ids := lo.Keys(m.byID)
	slices.Sort(ids)
	return ids
}

// Len returns the number of crosses registered.
func (m *Manager) Len() int { return len(m.byID) }
