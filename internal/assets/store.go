package assets

import "sync"

// LoadFunc produces the process's model and metadata. Store guarantees it
// runs at most once.
type LoadFunc func() (Model, *Metadata, error)

// Store is the process-wide cache for the loaded asset pair. Construction is
// lazy and guarded: concurrent first-time callers trigger a single load, and
// a load failure is cached the same way a success is, so no request retries
// the most expensive operation in the system.
type Store struct {
	load LoadFunc

	once  sync.Once
	model Model
	meta  *Metadata
	err   error
}

// NewStore wraps load in a cached accessor.
func NewStore(load LoadFunc) *Store {
	return &Store{load: load}
}

// Get returns the cached asset pair, constructing it on first use. Every
// caller observes the same Model instance and the same error.
func (s *Store) Get() (Model, *Metadata, error) {
	s.once.Do(func() {
		s.model, s.meta, s.err = s.load()
	})
	return s.model, s.meta, s.err
}
