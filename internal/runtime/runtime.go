package runtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rzbill/eventreg/internal/changelog"
	cfgpkg "github.com/rzbill/eventreg/internal/config"
	"github.com/rzbill/eventreg/internal/namespace"
	"github.com/rzbill/eventreg/internal/registry"
	"github.com/rzbill/eventreg/internal/storage/kv"
	pebblestore "github.com/rzbill/eventreg/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Metrics       pebblestore.MetricsHook
	Config        cfgpkg.Config
}

// Runtime wires storage, config and per-namespace registries for a
// single-node instance.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config

	mu         sync.Mutex
	registries map[string]*registry.Registry
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Metrics:       opts.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{db: db, config: opts.Config, registries: make(map[string]*registry.Registry)}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// CheckHealth reports whether the store answers reads.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Ping()
}

// EnsureNamespace creates a namespace record if absent.
func (r *Runtime) EnsureNamespace(name string) (namespace.Meta, error) {
	return namespace.EnsureNamespace(r.db, name)
}

// NamespaceExists reports whether name has a namespace record.
func (r *Runtime) NamespaceExists(name string) (bool, error) {
	_, ok, err := namespace.Get(r.db, name)
	return ok, err
}

// ListNamespaces returns known namespace names in sorted order.
func (r *Runtime) ListNamespaces() ([]string, error) {
	return namespace.List(r.db)
}

// Registry returns the registry for ns. Every call for the same namespace
// returns the same instance so that all callers serialize on its lock.
func (r *Runtime) Registry(ns string) *registry.Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg, ok := r.registries[ns]; ok {
		return reg
	}
	var opts []registry.Option
	if r.config.RecordChanges {
		opts = append(opts, registry.WithRecorder(changelog.Open(r.db, ns)))
	}
	reg := registry.New(r.db, ns, opts...)
	r.registries[ns] = reg
	return reg
}

// Changes opens the change log of ns.
func (r *Runtime) Changes(ns string) *changelog.Log {
	return changelog.Open(r.db, ns)
}

// Store exposes the underlying key-value store (internal use only).
func (r *Runtime) Store() kv.Store { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
