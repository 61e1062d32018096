package prefs

// Keys for the persisted user preferences. All values are stored as strings,
// mirroring the flat key/value contract of browser-style local storage.
const (
	KeyTheme  = "theme"
	KeyWidth  = "width"
	KeyHeight = "height"
	KeyUserID = "user_id"
)

// Store is the preference-store contract injected into every component that
// persists user state. Reads and writes are not wrapped in any lock or
// transaction: preferences are single-writer-per-process state and the most
// recent write wins.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryStore is an in-process Store used in tests and as a fallback when no
// preferences file is usable.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.values[key] = value
}
