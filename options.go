package mintbump

import (
	"log/slog"
	"slices"
)

// Options configures an Updater run.
type Options struct {
	// Prerelease lets prerelease tags (see IsPrerelease) win the selection.
	Prerelease bool

	// MaxBump holds back replacements whose Bump exceeds it.
	// Zero value (BumpUnknown) means no limit.
	MaxBump Bump

	// Ignore lists package names that are never bumped.
	Ignore []string

	// DryRun computes replacements without writing the Mintfile.
	DryRun bool
}

func (o Options) ignored(name string) bool {
	return slices.Contains(o.Ignore, name)
}

// Option configures an Updater.
type Option func(*Updater)

// WithLogger sets the logger used for per-package decisions.
// Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.log = l
		}
	}
}

// WithOptions sets run options.
func WithOptions(o Options) Option {
	return func(u *Updater) {
		u.opt = o
	}
}
