package ledger

// memoryBackend keeps committed state in a plain map, for tests and dry runs.
type memoryBackend struct {
	data map[string][]byte
}

// NewMemory builds a Storage backed by an in-process map.
func NewMemory() Storage {
	return newStore(&memoryBackend{data: make(map[string][]byte)})
}

func (m *memoryBackend) get(key []byte) (bool, []byte, error) {
	v, ok := m.data[string(key)]
	return ok, v, nil
}

func (m *memoryBackend) apply(puts map[string][]byte, deletes map[string]struct{}) error {
	for k, v := range puts {
		m.data[k] = v
	}
	for k := range deletes {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryBackend) close() error {
	return nil
}
