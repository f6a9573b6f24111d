// Package gitremote lists tags of git remotes with `git ls-remote`.
package gitremote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// ErrHostDown is returned while the circuit breaker of a host is open.
var ErrHostDown = errors.New("git host unavailable")

const (
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 2
	defaultThreshold = 5
	defaultBaseDelay = 500 * time.Millisecond

	// maxRetryElapsed bounds the retry loop of one listing.
	maxRetryElapsed = 2 * time.Minute
)

// hostFailureMarkers are git stderr fragments reporting that the host,
// not the repository, is unreachable.
var hostFailureMarkers = []string{
	"Could not resolve host",
	"Could not resolve hostname",
	"Connection refused",
	"Connection timed out",
	"Operation timed out",
	"Network is unreachable",
	"Failed to connect",
}

// hostError marks an ls-remote failure caused by the host.
type hostError struct {
	err error
}

func (e *hostError) Error() string { return e.err.Error() }
func (e *hostError) Unwrap() error { return e.err }

func isHostFailure(err error) bool {
	var he *hostError
	return errors.As(err, &he)
}

// Lister runs `git ls-remote --tags --refs` against remotes.
type Lister struct {
	git       string
	timeout   time.Duration
	retries   uint64
	threshold int64
	baseDelay time.Duration

	breakers map[string]*circuit.Breaker
	mu       sync.Mutex
}

// Option configures a Lister.
type Option func(*Lister)

// WithGit sets the git executable. Defaults to "git" from PATH.
func WithGit(path string) Option {
	return func(l *Lister) {
		if path != "" {
			l.git = path
		}
	}
}

// WithTimeout bounds each ls-remote attempt.
func WithTimeout(d time.Duration) Option {
	return func(l *Lister) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithRetries sets how many times a failed listing is retried.
func WithRetries(n uint64) Option {
	return func(l *Lister) {
		l.retries = n
	}
}

// WithBaseDelay sets the first retry delay; later delays grow exponentially.
func WithBaseDelay(d time.Duration) Option {
	return func(l *Lister) {
		if d > 0 {
			l.baseDelay = d
		}
	}
}

// WithBreakerThreshold sets how many consecutive failures open a host's breaker.
func WithBreakerThreshold(n int64) Option {
	return func(l *Lister) {
		if n > 0 {
			l.threshold = n
		}
	}
}

// New creates a Lister with the given options.
func New(opts ...Option) *Lister {
	l := &Lister{
		git:       "git",
		timeout:   defaultTimeout,
		retries:   defaultRetries,
		threshold: defaultThreshold,
		baseDelay: defaultBaseDelay,
		breakers:  make(map[string]*circuit.Breaker),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// ListTags returns the tag names of remote, "refs/tags/" stripped.
//
// Only host-level failures (timeouts, DNS, refused connections) count
// toward the host's breaker. A missing or private repository fails that
// call alone.
func (l *Lister) ListTags(ctx context.Context, remote string) ([]string, error) {
	host := hostOf(remote)
	breaker := l.breaker(host)

	var (
		out     []byte
		repoErr error
	)
	err := breaker.Call(func() error {
		var fetchErr error
		out, fetchErr = l.fetch(ctx, remote)
		if fetchErr != nil && !isHostFailure(fetchErr) {
			repoErr = fetchErr
			return nil
		}
		return fetchErr
	}, 0)
	if errors.Is(err, circuit.ErrBreakerOpen) {
		return nil, fmt.Errorf("%w: %s", ErrHostDown, host)
	}
	if err != nil {
		return nil, err
	}
	if repoErr != nil {
		return nil, repoErr
	}

	return ParseTags(string(out)), nil
}

// fetch runs ls-remote once, then up to l.retries more times on failure.
func (l *Lister) fetch(ctx context.Context, remote string) ([]byte, error) {
	if l.retries == 0 {
		return l.lsRemote(ctx, remote)
	}

	var out []byte
	err := backoff.Retry(func() error {
		var lsErr error
		out, lsErr = l.lsRemote(ctx, remote)
		return lsErr
	}, backoff.WithContext(backoff.WithMaxRetries(l.backOff(), l.retries), ctx))

	return out, err
}

// BreakerState reports "open" or "closed" per host seen so far.
func (l *Lister) BreakerState() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	states := make(map[string]string, len(l.breakers))
	for host, b := range l.breakers {
		if b.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}

	return states
}

func (l *Lister) breaker(host string) *circuit.Breaker {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.breakers[host]; ok {
		return b
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = time.Minute
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	b := circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(l.threshold),
	})
	l.breakers[host] = b

	return b
}

func (l *Lister) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.baseDelay
	b.MaxInterval = 10 * l.baseDelay
	b.MaxElapsedTime = maxRetryElapsed
	b.Reset()

	return b
}

func (l *Lister) lsRemote(ctx context.Context, remote string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.git, "ls-remote", "--tags", "--refs", remote)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			err = fmt.Errorf("git ls-remote %s: %w: %s", remote, err, msg)
		} else {
			err = fmt.Errorf("git ls-remote %s: %w", remote, err)
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) || hasHostFailure(msg) {
			return nil, &hostError{err: err}
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

func hasHostFailure(stderr string) bool {
	for _, m := range hostFailureMarkers {
		if strings.Contains(stderr, m) {
			return true
		}
	}

	return false
}

// ParseTags extracts tag names from `git ls-remote` output. Each line is
// "<sha>\t<ref>"; the tag is the last "/" component of the ref.
func ParseTags(out string) []string {
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ref := line
		if i := strings.LastIndexByte(line, '\t'); i >= 0 {
			ref = line[i+1:]
		}

		if i := strings.LastIndexByte(ref, '/'); i >= 0 {
			ref = ref[i+1:]
		}

		if ref != "" {
			tags = append(tags, ref)
		}
	}

	return tags
}

// hostOf extracts a host for breaker grouping from URLs and scp-like
// "user@host:path" remotes.
func hostOf(remote string) string {
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err == nil && u.Host != "" {
			return u.Hostname()
		}
		if err == nil && u.Scheme == "file" {
			return "local"
		}
	}

	rest := remote
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		rest = rest[i+1:]
	}
	if host, _, ok := strings.Cut(rest, ":"); ok && host != "" {
		return host
	}

	return remote
}
