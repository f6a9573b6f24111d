package gitremote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestParseTags(t *testing.T) {
	t.Parallel()

	out := "1111\trefs/tags/v1.0.0\n" +
		"2222\trefs/tags/1.1.0-rc.1\n" +
		"\n" +
		"3333\trefs/tags/release/2.0.0\r\n" +
		"4444\trefs/tags/latest\n"

	got := ParseTags(out)
	want := []string{"v1.0.0", "1.1.0-rc.1", "2.0.0", "latest"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTags = %v; want %v", got, want)
	}

	if got := ParseTags(""); got != nil {
		t.Fatalf("ParseTags(\"\") = %v; want nil", got)
	}
}

func TestHostOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/realm/SwiftLint.git", "github.com"},
		{"https://gitlab.example.com:8443/org/tool.git", "gitlab.example.com"},
		{"ssh://git@github.com/org/repo.git", "github.com"},
		{"git@github.com:org/private.git", "github.com"},
		{"file:///tmp/repo", "local"},
		{"/tmp/repo", "/tmp/repo"},
	}

	for _, tc := range cases {
		if got := hostOf(tc.in); got != tc.want {
			t.Fatalf("hostOf(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// fakeGit writes a shell script standing in for git. Every run appends a
// line to the returned counter file.
func fakeGit(t *testing.T, body string) (gitPath, counter string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for git")
	}

	dir := t.TempDir()
	counter = filepath.Join(dir, "calls")
	gitPath = filepath.Join(dir, "git")

	script := "#!/bin/sh\necho \"$@\" >> '" + counter + "'\n" + body + "\n"
	if err := os.WriteFile(gitPath, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	return gitPath, counter
}

func calls(t *testing.T, counter string) []string {
	t.Helper()

	data, err := os.ReadFile(counter)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}

	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestListTags(t *testing.T) {
	t.Parallel()

	git, counter := fakeGit(t, `printf 'aaaa\trefs/tags/v1.0.0\nbbbb\trefs/tags/v1.1.0\n'`)
	l := New(WithGit(git))

	got, err := l.ListTags(context.Background(), "https://github.com/org/repo.git")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}

	if want := []string{"v1.0.0", "v1.1.0"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ListTags = %v; want %v", got, want)
	}

	want := []string{"ls-remote --tags --refs https://github.com/org/repo.git"}
	if got := calls(t, counter); !reflect.DeepEqual(got, want) {
		t.Fatalf("git args = %v; want %v", got, want)
	}
}

func TestListTags_Retries(t *testing.T) {
	t.Parallel()

	git, counter := fakeGit(t, `echo "fatal: repository not found" >&2; exit 128`)
	l := New(WithGit(git), WithRetries(2), WithBaseDelay(time.Millisecond))

	_, err := l.ListTags(context.Background(), "https://github.com/org/missing.git")
	if err == nil || !strings.Contains(err.Error(), "repository not found") {
		t.Fatalf("err = %v; want git stderr in message", err)
	}

	if n := len(calls(t, counter)); n != 3 {
		t.Fatalf("git ran %d times; want 3", n)
	}
}

func TestListTags_NoRetries(t *testing.T) {
	t.Parallel()

	git, counter := fakeGit(t, `echo "fatal: repository not found" >&2; exit 128`)
	l := New(WithGit(git), WithRetries(0))

	done := make(chan error, 1)
	go func() {
		_, err := l.ListTags(context.Background(), "https://github.com/org/missing.git")
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("want error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("ListTags with zero retries did not return")
	}

	if n := len(calls(t, counter)); n != 1 {
		t.Fatalf("git ran %d times; want 1", n)
	}
}

func TestListTags_RepoFailuresKeepBreakerClosed(t *testing.T) {
	t.Parallel()

	git, _ := fakeGit(t, `case "$4" in
*bad*) echo "remote: Repository not found." >&2; exit 128 ;;
esac
printf 'aaaa\trefs/tags/1.0.0\n'`)
	l := New(WithGit(git), WithRetries(1), WithBaseDelay(time.Millisecond), WithBreakerThreshold(5))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := l.ListTags(ctx, "https://github.com/org/tool"+strings.Repeat("x", i)+"-bad.git")
		if err == nil || errors.Is(err, ErrHostDown) {
			t.Fatalf("bad repo %d: err = %v; want repository error", i, err)
		}
	}

	got, err := l.ListTags(ctx, "https://github.com/org/good.git")
	if err != nil {
		t.Fatalf("good repo: %v", err)
	}
	if want := []string{"1.0.0"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ListTags = %v; want %v", got, want)
	}

	if st := l.BreakerState(); st["github.com"] != "closed" {
		t.Fatalf("BreakerState = %v; want github.com closed", st)
	}
}

func TestListTags_BreakerOpens(t *testing.T) {
	t.Parallel()

	git, counter := fakeGit(t, `echo "fatal: unable to access: Could not resolve host: git.example.com" >&2; exit 128`)
	l := New(WithGit(git), WithRetries(0), WithBreakerThreshold(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := l.ListTags(ctx, "https://git.example.com/org/repo.git"); err == nil {
			t.Fatalf("attempt %d: want error", i)
		}
	}

	_, err := l.ListTags(ctx, "https://git.example.com/org/other.git")
	if !errors.Is(err, ErrHostDown) {
		t.Fatalf("err = %v; want ErrHostDown", err)
	}

	if n := len(calls(t, counter)); n != 2 {
		t.Fatalf("git ran %d times; want 2", n)
	}

	if st := l.BreakerState(); st["git.example.com"] != "open" {
		t.Fatalf("BreakerState = %v; want git.example.com open", st)
	}
}

func TestListTags_Timeout(t *testing.T) {
	t.Parallel()

	git, _ := fakeGit(t, `exec sleep 5`)
	l := New(WithGit(git), WithRetries(0), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := l.ListTags(context.Background(), "https://github.com/org/slow.git")
	if err == nil || !isHostFailure(err) {
		t.Fatalf("err = %v; want host failure", err)
	}

	if d := time.Since(start); d > 3*time.Second {
		t.Fatalf("ListTags took %v; want it bounded by the timeout", d)
	}
}
