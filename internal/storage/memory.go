package storage

import "github.com/nibzard/dayrate/internal/tracker"

// MemoryGateway keeps the document in memory. SaveErr, when set, is
// returned by every Save.
type MemoryGateway struct {
	Data    tracker.Data
	Saves   int
	SaveErr error
}

// NewMemoryGateway returns a gateway seeded with data.
func NewMemoryGateway(data tracker.Data) *MemoryGateway {
	return &MemoryGateway{Data: data.Clone()}
}

// Load returns a copy of the stored data.
func (m *MemoryGateway) Load() tracker.Data {
	return m.Data.Clone()
}

// Save stores a copy of data.
func (m *MemoryGateway) Save(data tracker.Data) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Data = data.Clone()
	m.Saves++
	return nil
}
