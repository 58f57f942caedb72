package domain

// Store persists client-side preferences (bbolt + memory).
type Store interface {
	// === Preferences ===
	GetPreference(key string) (string, bool)
	SavePreference(key, value string) error

	// === URL history ===
	GetHistory() ([]string, bool)
	SaveHistory(urls []string) error

	Close() error
}
