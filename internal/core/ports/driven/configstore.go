package driven

// ConfigStore is flat key/value access to the settings file.
// Keys use dot notation ("dispatch.workers"); implementations map them onto
// nested tables when persisting.
type ConfigStore interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns "" when key is unset or not a string.
	GetString(key string) string

	// GetInt returns 0 when key is unset or not a whole number.
	GetInt(key string) int

	// GetBool returns false when key is unset or not a boolean.
	GetBool(key string) bool

	// GetStringSlice returns nil when key is unset or not a list.
	GetStringSlice(key string) []string

	// Set stores value under key and persists immediately.
	Set(key string, value any) error

	// Keys returns the set keys in sorted order.
	Keys() []string

	Save() error
	Load() error

	// Path returns the backing file path.
	Path() string
}
