// Package metrics defines the instrumentation hooks of the expiring cache
// so the core does not depend on a specific backend.
package metrics

// Cache receives one call per cache outcome.
type Cache interface {
	// Hit is called when a stored entry is returned unchanged.
	Hit()
	// Miss is called when no entry exists (or TTL is disabled) and the value is recomputed.
	Miss()
	// Expired is called when an entry is found past its expiry and recomputed.
	Expired()
	// ReadError is called when a stored entry cannot be read or decoded.
	ReadError()
	// WriteError is called when a recomputed entry cannot be stored.
	WriteError()
}

type nopCache struct{}

func (nopCache) Hit()        {}
func (nopCache) Miss()       {}
func (nopCache) Expired()    {}
func (nopCache) ReadError()  {}
func (nopCache) WriteError() {}

// NopCache returns a Cache that records nothing.
func NopCache() Cache { return nopCache{} }
