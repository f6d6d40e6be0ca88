package kvdb

// DB stores the canonical source of every record, keyed by record ID.
type DB interface {
	SetMany(entries []Entry) error
	Get(key string) (string, error)
	Update(key string, fn UpdateFunc) error
	Count() (int, error)
	Close() error
}

// UpdateFunc receives the current value for a key and returns the value to store.
type UpdateFunc func(value string) (string, error)
