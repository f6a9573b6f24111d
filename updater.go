package mintbump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/woozymasta/mintbump/mintfile"
)

// maxSuggestions caps "did you mean" names on ErrNoMatchingPackage.
const maxSuggestions = 3

// floatingRefs are branch names that are never pinned and bumped.
var floatingRefs = []string{"master", "develop", "main"}

// TagLister lists raw tag names (no "refs/tags/" prefix) of a git remote.
type TagLister interface {
	ListTags(ctx context.Context, url string) ([]string, error)
}

// Store loads and saves manifests.
type Store interface {
	Load(path string) (*mintfile.Mintfile, error)
	Save(path, text string) error
}

// Replacement rewrites "repo@From" into "repo@To".
type Replacement struct {
	Name string `json:"name"`
	Repo string `json:"repo"`
	From string `json:"from"`
	To   string `json:"to"`
	Bump Bump   `json:"bump"`
}

// Old returns the text being replaced.
func (r Replacement) Old() string {
	return r.Repo + "@" + r.From
}

// New returns the replacement text.
func (r Replacement) New() string {
	return r.Repo + "@" + r.To
}

// String returns the line printed for an applied bump.
func (r Replacement) String() string {
	return fmt.Sprintf("bump %s from %s to %s", r.Repo, r.From, r.To)
}

// Result describes one run over a Mintfile.
type Result struct {
	Path string

	// Applied holds replacements patched into the text, in manifest order.
	Applied []Replacement

	// Held holds replacements skipped because they exceed Options.MaxBump.
	Held []Replacement

	// Written is true when the Mintfile was saved.
	Written bool
}

// Updater bumps pinned versions in a Mintfile.
type Updater struct {
	tags  TagLister
	store Store
	log   *slog.Logger
	opt   Options
}

// NewUpdater returns an Updater listing tags with tags and reading and
// writing manifests through store.
func NewUpdater(tags TagLister, store Store, opts ...Option) *Updater {
	u := &Updater{
		tags:  tags,
		store: store,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(u)
	}

	return u
}

// Options returns the run options in use.
func (u *Updater) Options() Options {
	return u.opt
}

// ResolvePackage returns the replacement for pkg, if any. Floating refs
// and unpinned packages are skipped without listing tags. Listing errors
// count as "no tags".
func (u *Updater) ResolvePackage(ctx context.Context, pkg mintfile.Package, includePrerelease bool) (Replacement, bool) {
	r, err := u.resolve(ctx, pkg, includePrerelease)
	if err != nil {
		u.log.Debug("skip package", "name", pkg.Name, "repo", pkg.Repo, "reason", err)
		return Replacement{}, false
	}

	return r, true
}

func (u *Updater) resolve(ctx context.Context, pkg mintfile.Package, includePrerelease bool) (Replacement, error) {
	if pkg.Version == "" || isFloating(pkg.Version) {
		return Replacement{}, &Error{Kind: ErrNoEligibleVersion, Name: pkg.Name, Err: fmt.Errorf("version %q is not pinned", pkg.Version)}
	}

	tags, err := u.tags.ListTags(ctx, pkg.GitURL())
	if err != nil {
		return Replacement{}, &Error{Kind: ErrTagFetch, Name: pkg.Name, Err: err}
	}

	latest, ok := Latest(tags, includePrerelease)
	if !ok {
		return Replacement{}, &Error{Kind: ErrNoEligibleVersion, Name: pkg.Name, Err: fmt.Errorf("no version tags among %d", len(tags))}
	}

	if latest == pkg.Version {
		return Replacement{}, &Error{Kind: ErrNoEligibleVersion, Name: pkg.Name, Err: fmt.Errorf("%s is already the latest", latest)}
	}

	return Replacement{
		Name: pkg.Name,
		Repo: pkg.Repo,
		From: pkg.Version,
		To:   latest,
		Bump: ClassifyBump(pkg.Version, latest),
	}, nil
}

func isFloating(version string) bool {
	return slices.Contains(floatingRefs, version)
}

// ApplyUpdates replaces every literal occurrence of each r.Old() with
// r.New(), in order. Nothing else in text changes.
func ApplyUpdates(text string, reps []Replacement) string {
	for _, r := range reps {
		text = strings.ReplaceAll(text, r.Old(), r.New())
	}

	return text
}

// UpdateAll bumps every pinned package of the Mintfile at path.
func (u *Updater) UpdateAll(ctx context.Context, path string) (*Result, error) {
	m, err := u.load(path)
	if err != nil {
		return nil, err
	}

	return u.run(ctx, m, m.Packages)
}

// UpdateNamed bumps the packages whose name contains name (case-sensitive).
func (u *Updater) UpdateNamed(ctx context.Context, path, name string) (*Result, error) {
	m, err := u.load(path)
	if err != nil {
		return nil, err
	}

	var pkgs []mintfile.Package
	for _, p := range m.Packages {
		if strings.Contains(p.Name, name) {
			pkgs = append(pkgs, p)
		}
	}

	if len(pkgs) == 0 {
		return nil, &Error{
			Kind:        ErrNoMatchingPackage,
			Name:        name,
			Path:        path,
			Suggestions: suggest(name, m.Names()),
		}
	}

	return u.run(ctx, m, pkgs)
}

func (u *Updater) load(path string) (*mintfile.Mintfile, error) {
	m, err := u.store.Load(path)
	if err != nil {
		return nil, &Error{Kind: ErrManifestNotFound, Path: path, Err: err}
	}

	return m, nil
}

// run resolves pkgs one at a time, then patches and saves the text once.
func (u *Updater) run(ctx context.Context, m *mintfile.Mintfile, pkgs []mintfile.Package) (*Result, error) {
	res := &Result{Path: m.Path}

	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if u.opt.ignored(pkg.Name) {
			u.log.Debug("skip package", "name", pkg.Name, "reason", "ignored")
			continue
		}

		r, ok := u.ResolvePackage(ctx, pkg, u.opt.Prerelease)
		if !ok {
			continue
		}

		if !r.Bump.Within(u.opt.MaxBump) {
			u.log.Info("hold package", "name", r.Name, "from", r.From, "to", r.To, "bump", r.Bump, "max", u.opt.MaxBump)
			res.Held = append(res.Held, r)
			continue
		}

		u.log.Info("bump package", "name", r.Name, "from", r.From, "to", r.To, "bump", r.Bump)
		res.Applied = append(res.Applied, r)
	}

	if len(res.Applied) == 0 || u.opt.DryRun {
		return res, nil
	}

	if err := u.store.Save(m.Path, ApplyUpdates(m.Text, res.Applied)); err != nil {
		return res, fmt.Errorf("save %s: %w", m.Path, err)
	}
	res.Written = true

	return res, nil
}

// suggest returns up to maxSuggestions names close to pattern.
func suggest(pattern string, names []string) []string {
	matches := fuzzy.Find(pattern, names)

	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Str]; ok {
			continue
		}
		seen[m.Str] = struct{}{}
		out = append(out, m.Str)
	}

	return capStrings(out, maxSuggestions)
}

// IsFatal reports whether err should abort a run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrManifestNotFound) || errors.Is(err, ErrNoMatchingPackage)
}
