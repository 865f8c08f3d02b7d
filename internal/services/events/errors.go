package eventsvc

import "errors"

var (
	// ErrInvalidNamespace reports a name that fails the configured pattern or
	// allow list.
	ErrInvalidNamespace = errors.New("invalid namespace")
	// ErrNamespaceNotFound is returned for unknown namespaces when
	// auto-create is disabled.
	ErrNamespaceNotFound = errors.New("namespace not found")
	// ErrNamespaceLimit is returned when creating a namespace would exceed
	// MaxNamespaces.
	ErrNamespaceLimit = errors.New("namespace limit reached")
	// ErrInvalidFilter wraps CEL compile failures.
	ErrInvalidFilter = errors.New("invalid filter")
)
