package registry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rzbill/eventreg/internal/storage/kv"
)

var (
	// ErrCorruptState is returned when persisted registry state cannot be decoded.
	ErrCorruptState = errors.New("registry: corrupt state")
	// ErrCounterExhausted is returned by Create once every uint32 ID has been issued.
	ErrCounterExhausted = errors.New("registry: event counter exhausted")
)

// Recorder stages a change entry inside the registry's atomic write so the
// change is committed together with the state it describes.
type Recorder interface {
	Record(w kv.Writer, c Change) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithRecorder attaches a change recorder.
func WithRecorder(r Recorder) Option {
	return func(reg *Registry) { reg.recorder = r }
}

// WithClock overrides the time source used to stamp changes.
func WithClock(now func() time.Time) Option {
	return func(reg *Registry) { reg.now = now }
}

// Registry owns the event counter and the ID -> Event map of one namespace.
type Registry struct {
	store     kv.Store
	namespace string
	recorder  Recorder
	now       func() time.Time

	// mu spans the whole read-modify-write of every operation so the
	// counter and the map never observe an interleaved writer.
	mu sync.Mutex
}

// New binds a Registry to a store handle and namespace.
func New(store kv.Store, namespace string, opts ...Option) *Registry {
	r := &Registry{store: store, namespace: namespace, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace returns the namespace the registry persists under.
func (r *Registry) Namespace() string { return r.namespace }

func (r *Registry) loadCounter() (uint32, error) {
	b, ok, err := r.store.Get(KeyCounter(r.namespace))
	if err != nil {
		return 0, fmt.Errorf("load counter: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return decodeCounter(b)
}

func (r *Registry) loadEvents() (map[uint32]Event, error) {
	b, ok, err := r.store.Get(KeyEvents(r.namespace))
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if !ok {
		return make(map[uint32]Event), nil
	}
	return decodeEvents(b)
}

func (r *Registry) record(w kv.Writer, op Op, id uint32, ev *Event) error {
	if r.recorder == nil {
		return nil
	}
	return r.recorder.Record(w, Change{Op: op, EventID: id, AtMs: r.now().UnixMilli(), Event: ev})
}

// Create allocates the next ID, stores an Active event and returns the ID.
// Dates and strings are accepted as given.
func (r *Registry) Create(ctx context.Context, name, description string, startDate, endDate uint64) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.loadEvents()
	if err != nil {
		return 0, err
	}
	counter, err := r.loadCounter()
	if err != nil {
		return 0, err
	}
	if counter == math.MaxUint32 {
		return 0, ErrCounterExhausted
	}

	id := counter + 1
	ev := Event{
		EventID:     id,
		Name:        name,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      StatusActive,
	}
	events[id] = ev

	blob, err := encodeEvents(events)
	if err != nil {
		return 0, err
	}
	err = r.store.Write(ctx, func(w kv.Writer) error {
		if err := w.Set(KeyEvents(r.namespace), blob); err != nil {
			return err
		}
		if err := w.Set(KeyCounter(r.namespace), encodeCounter(id)); err != nil {
			return err
		}
		return r.record(w, OpCreated, id, &ev)
	})
	if err != nil {
		return 0, fmt.Errorf("persist create: %w", err)
	}
	return id, nil
}

// Read returns the event with the given ID. ok is false for IDs that were
// never created or have been deleted.
func (r *Registry) Read(_ context.Context, id uint32) (Event, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.loadEvents()
	if err != nil {
		return Event{}, false, err
	}
	ev, ok := events[id]
	return ev, ok, nil
}

// Update replaces every mutable field of an existing event. Updating an
// absent ID is a silent no-op; Update never creates records.
func (r *Registry) Update(ctx context.Context, id uint32, name, description string, startDate, endDate uint64, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.loadEvents()
	if err != nil {
		return err
	}
	ev, ok := events[id]
	if !ok {
		return nil
	}
	ev.Name = name
	ev.Description = description
	ev.StartDate = startDate
	ev.EndDate = endDate
	ev.Status = status
	events[id] = ev

	blob, err := encodeEvents(events)
	if err != nil {
		return err
	}
	err = r.store.Write(ctx, func(w kv.Writer) error {
		if err := w.Set(KeyEvents(r.namespace), blob); err != nil {
			return err
		}
		return r.record(w, OpUpdated, id, &ev)
	})
	if err != nil {
		return fmt.Errorf("persist update: %w", err)
	}
	return nil
}

// Delete removes the event if present and persists the map either way. The
// counter is left untouched so the ID is retired for good.
func (r *Registry) Delete(ctx context.Context, id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.loadEvents()
	if err != nil {
		return err
	}
	_, existed := events[id]
	delete(events, id)

	blob, err := encodeEvents(events)
	if err != nil {
		return err
	}
	err = r.store.Write(ctx, func(w kv.Writer) error {
		if err := w.Set(KeyEvents(r.namespace), blob); err != nil {
			return err
		}
		if !existed {
			return nil
		}
		return r.record(w, OpDeleted, id, nil)
	})
	if err != nil {
		return fmt.Errorf("persist delete: %w", err)
	}
	return nil
}

// List returns every live event in ascending ID order. Deleted IDs are skipped.
func (r *Registry) List(_ context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.loadEvents()
	if err != nil {
		return nil, err
	}
	return sortedEvents(events), nil
}

// Count returns how many events have ever been created. It does not shrink
// on delete, so it diverges from len(List) once anything is deleted.
func (r *Registry) Count(_ context.Context) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadCounter()
}

// ByIndex treats index as an alias for ID index+1. It reports ok=false when
// index >= Count or when that particular ID has been deleted, even if later
// IDs are still live. Positions are never compacted.
func (r *Registry) ByIndex(_ context.Context, index uint32) (Event, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counter, err := r.loadCounter()
	if err != nil {
		return Event{}, false, err
	}
	if index >= counter {
		return Event{}, false, nil
	}
	events, err := r.loadEvents()
	if err != nil {
		return Event{}, false, err
	}
	ev, ok := events[index+1]
	return ev, ok, nil
}
