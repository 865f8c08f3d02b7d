package namespace

import (
	"encoding/json"
	"time"

	"github.com/rzbill/eventreg/internal/storage/kv"
)

// Meta holds namespace metadata.
type Meta struct {
	Name        string `json:"name"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

var (
	nsMetaPrefix = []byte("nsmeta/")
)

// nsMetaKey builds metadata key for a namespace.
func nsMetaKey(ns string) []byte {
	k := make([]byte, 0, len(nsMetaPrefix)+len(ns))
	k = append(k, nsMetaPrefix...)
	k = append(k, ns...)
	return k
}

// Get returns the namespace meta record when present.
func Get(store kv.Store, name string) (Meta, bool, error) {
	b, ok, err := store.Get(nsMetaKey(name))
	if err != nil || !ok {
		return Meta{}, false, err
	}
	var m Meta
	if err := json.Unmarshal(b, &m); err != nil {
		return Meta{}, false, nil
	}
	return m, true, nil
}

// EnsureNamespace creates a namespace meta record if absent, returning the effective meta.
// Idempotent: returns existing if already present.
func EnsureNamespace(store kv.Store, name string) (Meta, error) {
	if m, ok, err := Get(store, name); err != nil {
		return Meta{}, err
	} else if ok {
		return m, nil
	}
	// absent or corrupted: (re)write
	m := Meta{Name: name, CreatedAtMs: time.Now().UnixMilli()}
	bytes, err := json.Marshal(m)
	if err != nil {
		return Meta{}, err
	}
	if err := store.Set(nsMetaKey(name), bytes); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// List returns every namespace name in byte order.
func List(store kv.Store) ([]string, error) {
	var names []string
	err := store.Scan(kv.ScanOptions{LowerBound: nsMetaPrefix, UpperBound: kv.PrefixEnd(nsMetaPrefix)}, func(k, _ []byte) bool {
		names = append(names, string(k[len(nsMetaPrefix):]))
		return true
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
