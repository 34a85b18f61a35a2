package repository

const defaultMemoryCapacity = 10_000

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithCapacity bounds the number of entries the MemoryStore retains.
func WithCapacity(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// SQLiteOption applies a configuration option to the SQLiteStore.
type SQLiteOption func(*sqliteSettings)

type sqliteSettings struct {
	busyTimeoutMs int
	wal           bool
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(ms int) SQLiteOption {
	return func(s *sqliteSettings) {
		if ms > 0 {
			s.busyTimeoutMs = ms
		}
	}
}

// WithWAL toggles write-ahead logging.
func WithWAL(enabled bool) SQLiteOption {
	return func(s *sqliteSettings) { s.wal = enabled }
}
