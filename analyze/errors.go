package analyze

import "errors"

// Sentinel error kinds wrapped by the collector's typed errors (spec.md
// §7). Callers use errors.Is against these, never string matching.
var (
	ErrBindFailure           = errors.New("bind failure")
	ErrTransportFailure      = errors.New("transport failure")
	ErrMalformedDescriptor   = errors.New("malformed security descriptor")
	ErrUnresolvedReference   = errors.New("unresolved reference")
	ErrSchemaMissingAttribute = errors.New("schema missing attribute")
	ErrConfigError           = errors.New("configuration error")
	ErrPartialPage           = errors.New("partial page")
)
