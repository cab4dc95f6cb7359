package road

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Manager owns every Road, indexed by id.
type Manager struct {
	byID map[int32]*Road
}

// NewManager creates an empty Road manager.
func NewManager() *Manager {
	return &Manager{byID: make(map[int32]*Road)}
}

// Add registers a road. Adding a duplicate id is a caller error.
func (m *Manager) Add(r *Road) error {
	if _, ok := m.byID[r.ID]; ok {
		return fmt.Errorf("road: duplicate road id %d", r.ID)
	}
	m.byID[r.ID] = r
	return nil
}

// Get returns the road with the given id, or nil if absent.
func (m *Manager) Get(id int32) *Road {
	return m.byID[id]
}

// GetOrError returns the road with the given id, or an error if absent.
func (m *Manager) GetOrError(id int32) (*Road, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("road: no such road %d", id)
	}
	return r, nil
}

// IDs returns every road id in ascending order.
func (m *Manager) IDs() []int32 {
	ids := lo.Keys(m.byID)
	slices.Sort(ids)
	return ids
}

// Len returns the number of roads registered.
func (m *Manager) Len() int { return len(m.byID) }

// All returns every road, order unspecified.
func (m *Manager) All() []*Road {
	return lo.Values(m.byID)
}
