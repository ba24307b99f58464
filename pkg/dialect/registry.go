package dialect

import "sync"

// registry maps IDs to implementations. Implementations add themselves
// from init, so reads after program start never contend.
var registry struct {
	sync.RWMutex
	byID map[ID]*Dialect
}

// Register makes d available under d.ID, replacing any earlier entry.
func Register(d *Dialect) {
	registry.Lock()
	defer registry.Unlock()
	if registry.byID == nil {
		registry.byID = map[ID]*Dialect{}
	}
	registry.byID[d.ID] = d
}

// Get returns the implementation registered for id.
func Get(id ID) (*Dialect, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.byID[id]
	return d, ok
}

// Lookup is Get with a ConfigurationError for IDs outside the enum or
// without an implementation.
func Lookup(id ID) (*Dialect, error) {
	if !id.Valid() {
		return nil, &ConfigurationError{Dialect: id, Message: "unknown dialect"}
	}
	if d, ok := Get(id); ok {
		return d, nil
	}
	return nil, &ConfigurationError{Dialect: id}
}

// LookupName resolves a user-supplied dialect name such as "mssql".
func LookupName(name string) (*Dialect, error) {
	id, err := ParseID(name)
	if err != nil {
		return nil, err
	}
	return Lookup(id)
}
