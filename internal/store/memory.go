package store

// MemStore is an in-memory Storage. It records every Write so tests can assert on
// what was persisted and how often.
type MemStore struct {
	items   []string
	written bool

	// Writes holds a copy of the list passed to each Write/Save call, oldest first.
	Writes [][]string
}

// NewMemStore returns a store holding seed as previously persisted state.
// Seeding does not count as a write.
func NewMemStore(seed ...string) *MemStore {
	m := &MemStore{}
	if len(seed) > 0 {
		m.items = clone(seed)
		m.written = true
	}
	return m
}

func (m *MemStore) Location() string { return "memory" }

func (m *MemStore) Load() ([]string, error) {
	if !m.written {
		return nil, errNoData
	}
	return clone(m.items), nil
}

func (m *MemStore) Save(items []string) error {
	m.items = clone(items)
	m.written = true
	m.Writes = append(m.Writes, clone(items))
	return nil
}

func (m *MemStore) Read() []string {
	items, err := m.Load()
	if err != nil {
		return []string{}
	}
	return items
}

func (m *MemStore) Write(items []string) {
	_ = m.Save(items)
}

func (m *MemStore) Close() error { return nil }

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
