package mintbump

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrManifestNotFound is returned when the Mintfile is missing or cannot be parsed.
	ErrManifestNotFound = errors.New("mintfile not found")
	// ErrNoMatchingPackage is returned when a name filter matches no package.
	ErrNoMatchingPackage = errors.New("no matching package")
	// ErrTagFetch marks a failed tag listing. Never fatal for a run.
	ErrTagFetch = errors.New("tag fetch failed")
	// ErrNoEligibleVersion marks a package without a newer candidate. Never fatal for a run.
	ErrNoEligibleVersion = errors.New("no eligible version")
)

// Error carries one of the sentinel kinds above plus the offending
// package name or manifest path.
type Error struct {
	Kind        error
	Name        string
	Path        string
	Suggestions []string
	Err         error
}

func (e *Error) Error() string {
	var b strings.Builder

	switch e.Kind {
	case ErrNoMatchingPackage:
		fmt.Fprintf(&b, "package named %q was not found", e.Name)
		if e.Path != "" {
			fmt.Fprintf(&b, " in %s", e.Path)
		}
		if len(e.Suggestions) > 0 {
			fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
		}

	case ErrManifestNotFound:
		fmt.Fprintf(&b, "mintfile %s does not exist or cannot be read", e.Path)

	default:
		b.WriteString(e.Kind.Error())
		if e.Name != "" {
			fmt.Fprintf(&b, " for %s", e.Name)
		}
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrNoMatchingPackage) works.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}
