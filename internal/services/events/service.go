package eventsvc

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/rzbill/eventreg/internal/changelog"
	"github.com/rzbill/eventreg/internal/namespace"
	"github.com/rzbill/eventreg/internal/registry"
	"github.com/rzbill/eventreg/internal/runtime"
	logpkg "github.com/rzbill/eventreg/pkg/log"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// Service exposes registry operations scoped by namespace.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
	nameRe *regexp.Regexp

	// nsMu serializes namespace creation so MaxNamespaces holds.
	nsMu sync.Mutex
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger returns a Service using the provided logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("events"))
	}
	s := &Service{rt: rt, logger: logger}
	// Config.Validate rejects bad patterns; an empty pattern accepts any name.
	if pattern := rt.Config().NamespaceNameRegex; pattern != "" {
		if re, err := regexp.Compile(`^(?:` + pattern + `)$`); err == nil {
			s.nameRe = re
		}
	}
	return s
}

func (s *Service) validateName(ns string) error {
	if s.nameRe != nil && !s.nameRe.MatchString(ns) {
		return fmt.Errorf("%w: %q does not match %s", ErrInvalidNamespace, ns, s.rt.Config().NamespaceNameRegex)
	}
	if allowed := s.rt.Config().AllowedNamespaces; len(allowed) > 0 && !slices.Contains(allowed, ns) {
		return fmt.Errorf("%w: %q is not allowed", ErrInvalidNamespace, ns)
	}
	return nil
}

// resolve applies defaulting and validation. Unknown namespaces are created
// on write when auto-create is enabled; reads of an unknown namespace see an
// empty registry.
func (s *Service) resolve(ns string, write bool) (string, error) {
	if ns == "" {
		ns = s.rt.Config().DefaultNamespaceName
	}
	if err := s.validateName(ns); err != nil {
		return "", err
	}
	ok, err := s.rt.NamespaceExists(ns)
	if err != nil {
		return "", fmt.Errorf("lookup namespace: %w", err)
	}
	if ok {
		return ns, nil
	}
	if !s.rt.Config().AllowAutoCreateNamespaces {
		return "", fmt.Errorf("%w: %q", ErrNamespaceNotFound, ns)
	}
	if write {
		if _, err := s.createNamespace(ns); err != nil {
			return "", err
		}
	}
	return ns, nil
}

func (s *Service) createNamespace(ns string) (namespace.Meta, error) {
	s.nsMu.Lock()
	defer s.nsMu.Unlock()
	if limit := s.rt.Config().MaxNamespaces; limit > 0 {
		ok, err := s.rt.NamespaceExists(ns)
		if err != nil {
			return namespace.Meta{}, fmt.Errorf("lookup namespace: %w", err)
		}
		if !ok {
			names, err := s.rt.ListNamespaces()
			if err != nil {
				return namespace.Meta{}, fmt.Errorf("list namespaces: %w", err)
			}
			if len(names) >= limit {
				return namespace.Meta{}, fmt.Errorf("%w: %d", ErrNamespaceLimit, limit)
			}
		}
	}
	meta, err := s.rt.EnsureNamespace(ns)
	if err != nil {
		return namespace.Meta{}, fmt.Errorf("ensure namespace: %w", err)
	}
	return meta, nil
}

// EnsureNamespace creates ns if absent regardless of the auto-create setting.
func (s *Service) EnsureNamespace(_ context.Context, ns string) (namespace.Meta, error) {
	if ns == "" {
		ns = s.rt.Config().DefaultNamespaceName
	}
	if err := s.validateName(ns); err != nil {
		return namespace.Meta{}, err
	}
	meta, err := s.createNamespace(ns)
	if err != nil {
		return namespace.Meta{}, err
	}
	s.logger.Info("ensured namespace", logpkg.Str("namespace", ns))
	return meta, nil
}

// ListNamespaces returns all namespaces known to the system.
func (s *Service) ListNamespaces(_ context.Context) ([]string, error) {
	names, err := s.rt.ListNamespaces()
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	return names, nil
}

// Create registers a new Active event and returns its ID.
func (s *Service) Create(ctx context.Context, ns, name, description string, startDate, endDate uint64) (uint32, error) {
	ns, err := s.resolve(ns, true)
	if err != nil {
		return 0, err
	}
	id, err := s.rt.Registry(ns).Create(ctx, name, description, startDate, endDate)
	if err != nil {
		s.logger.Error("create event failed", logpkg.Str("namespace", ns), logpkg.Err(err))
		return 0, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("created event", logpkg.Str("namespace", ns), logpkg.Uint32("event_id", id))
	return id, nil
}

// Read returns the event with id; ok is false when it does not exist.
func (s *Service) Read(ctx context.Context, ns string, id uint32) (registry.Event, bool, error) {
	ns, err := s.resolve(ns, false)
	if err != nil {
		return registry.Event{}, false, err
	}
	ev, ok, err := s.rt.Registry(ns).Read(ctx, id)
	if err != nil {
		return registry.Event{}, false, fmt.Errorf("read event: %w", err)
	}
	return ev, ok, nil
}

// Update replaces every mutable field of id. Absent IDs are ignored.
func (s *Service) Update(ctx context.Context, ns string, id uint32, name, description string, startDate, endDate uint64, status registry.Status) error {
	ns, err := s.resolve(ns, true)
	if err != nil {
		return err
	}
	if err := s.rt.Registry(ns).Update(ctx, id, name, description, startDate, endDate, status); err != nil {
		s.logger.Error("update event failed", logpkg.Str("namespace", ns), logpkg.Uint32("event_id", id), logpkg.Err(err))
		return fmt.Errorf("update event: %w", err)
	}
	s.logger.Debug("updated event",
		logpkg.Str("namespace", ns),
		logpkg.Uint32("event_id", id),
		logpkg.Str("status", status.String()),
	)
	return nil
}

// Delete removes id if present.
func (s *Service) Delete(ctx context.Context, ns string, id uint32) error {
	ns, err := s.resolve(ns, true)
	if err != nil {
		return err
	}
	if err := s.rt.Registry(ns).Delete(ctx, id); err != nil {
		s.logger.Error("delete event failed", logpkg.Str("namespace", ns), logpkg.Uint32("event_id", id), logpkg.Err(err))
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info("deleted event", logpkg.Str("namespace", ns), logpkg.Uint32("event_id", id))
	return nil
}

// List returns live events in ascending ID order, keeping only those for
// which filter (a CEL expression, optional) evaluates to true.
func (s *Service) List(ctx context.Context, ns, filter string) ([]registry.Event, error) {
	f, err := newEventFilter(filter, s.rt.Config().MaxFilterLength)
	if err != nil {
		return nil, err
	}
	ns, err = s.resolve(ns, false)
	if err != nil {
		return nil, err
	}
	all, err := s.rt.Registry(ns).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if !f.enabled {
		return all, nil
	}
	out := all[:0]
	for _, ev := range all {
		if f.match(ev) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Count returns the number of events ever created in ns.
func (s *Service) Count(ctx context.Context, ns string) (uint32, error) {
	ns, err := s.resolve(ns, false)
	if err != nil {
		return 0, err
	}
	n, err := s.rt.Registry(ns).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// ByIndex returns the event at positional index, i.e. ID index+1.
func (s *Service) ByIndex(ctx context.Context, ns string, index uint32) (registry.Event, bool, error) {
	ns, err := s.resolve(ns, false)
	if err != nil {
		return registry.Event{}, false, err
	}
	ev, ok, err := s.rt.Registry(ns).ByIndex(ctx, index)
	if err != nil {
		return registry.Event{}, false, fmt.Errorf("event by index: %w", err)
	}
	return ev, ok, nil
}

// HistoryOptions selects a window of the change log.
type HistoryOptions struct {
	Start   uint64
	Limit   int
	Reverse bool
}

// History returns recorded mutations of ns and the token to resume from
// (0 when exhausted). Limit defaults to 100 and is capped at 1000.
func (s *Service) History(_ context.Context, ns string, opts HistoryOptions) ([]changelog.Entry, uint64, error) {
	ns, err := s.resolve(ns, false)
	if err != nil {
		return nil, 0, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	items, next, err := s.rt.Changes(ns).Read(changelog.ReadOptions{Start: opts.Start, Limit: limit, Reverse: opts.Reverse})
	if err != nil {
		return nil, 0, fmt.Errorf("read history: %w", err)
	}
	return items, next, nil
}
