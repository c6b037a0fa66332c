package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchResource is returned when a requested identifier does
	// not exist in the catalog.
	ErrNoSuchResource = errors.New("no such resource")
	// ErrForbidden is returned when the resource exists but the access
	// context may not open it. Callers decide whether to surface the
	// distinction.
	ErrForbidden = errors.New("access to resource denied")
	// ErrCyclicDependency is returned at load time when a computed
	// dataset transitively depends on itself.
	ErrCyclicDependency = errors.New("cyclic dataset dependency")
)

// ConfigError describes malformed or inconsistent declarative input.
// A ConfigError aborts the load, leaving any previously published
// snapshot active.
type ConfigError struct {
	Section    string
	Identifier string
	Reason     string
}

func (e *ConfigError) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("invalid configuration in %s %q: %s", e.Section, e.Identifier, e.Reason)
	}
	return fmt.Sprintf("invalid configuration in %s: %s", e.Section, e.Reason)
}

func configError(section, identifier, format string, args ...any) error {
	return &ConfigError{
		Section:    section,
		Identifier: identifier,
		Reason:     fmt.Sprintf(format, args...),
	}
}
