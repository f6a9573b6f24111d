package mintbump

import (
	"reflect"
	"testing"
)

func TestNewTagVersionMap(t *testing.T) {
	t.Parallel()

	m := NewTagVersionMap([]string{"v1.0.0", "main", "1.0.0", "test", "v1.0.0", "2.0.0-rc.1", "1.2"})

	wantTags := []string{"v1.0.0", "1.0.0", "2.0.0-rc.1"}
	if got := m.Tags(); !reflect.DeepEqual(got, wantTags) {
		t.Fatalf("Tags() = %v; want %v", got, wantTags)
	}

	if m.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", m.Len())
	}

	if v, ok := m.Get("v1.0.0"); !ok || v != "1.0.0" {
		t.Fatalf(`Get("v1.0.0") = %q, %v; want "1.0.0", true`, v, ok)
	}

	if _, ok := m.Get("main"); ok {
		t.Fatalf(`Get("main") found; want missing`)
	}
}

func TestTagVersionMap_Nil(t *testing.T) {
	t.Parallel()

	var m *TagVersionMap
	if m.Len() != 0 || m.Tags() != nil {
		t.Fatalf("nil map should be empty")
	}

	if got := m.Filter(func(string) bool { return true }); got.Len() != 0 {
		t.Fatalf("Filter on nil map = %d entries; want 0", got.Len())
	}

	if _, ok := SelectLatest(m, true); ok {
		t.Fatalf("SelectLatest on nil map found a tag")
	}
}

func TestSelectLatest_ReleaseOverPrerelease(t *testing.T) {
	t.Parallel()

	tags := []string{"0.0.1", "1.0.0", "test", "2.0.0-rc.3+meta", "2.0.0"}

	cases := []struct {
		name string
		tags []string
		pre  bool
		want string
	}{
		{"with prerelease", tags, true, "2.0.0"},
		{"without prerelease", tags, false, "2.0.0"},
		{"newer alpha with prerelease", append(tags[:len(tags):len(tags)], "3.0.0-alpha"), true, "3.0.0-alpha"},
		{"newer alpha without prerelease", append(tags[:len(tags):len(tags)], "3.0.0-alpha"), false, "2.0.0"},
	}

	for _, tc := range cases {
		got, ok := SelectLatest(NewTagVersionMap(tc.tags), tc.pre)
		if !ok || got != tc.want {
			t.Fatalf("%s: SelectLatest = %q, %v; want %q", tc.name, got, ok, tc.want)
		}
	}
}

func TestSelectLatest_ReturnsRawTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tags []string
		pre  bool
		want string
	}{
		{[]string{"v1.0.0", "v1.10.0", "v1.9.0"}, false, "v1.10.0"},
		{[]string{"v2.0.0-rc.1", "v2.0.0", "v1.0.0"}, true, "v2.0.0"},
		// release sibling written without "v" is still found by version
		{[]string{"v2.0.0-rc.1", "2.0.0"}, true, "2.0.0"},
		// same version twice: the later tag wins
		{[]string{"v1.0.0", "1.0.0"}, false, "1.0.0"},
		{[]string{"1.0.0", "v1.0.0"}, false, "v1.0.0"},
	}

	for _, tc := range cases {
		got, ok := Latest(tc.tags, tc.pre)
		if !ok || got != tc.want {
			t.Fatalf("Latest(%v, %v) = %q, %v; want %q", tc.tags, tc.pre, got, ok, tc.want)
		}
	}
}

func TestSelectLatest_NaturalOrder(t *testing.T) {
	t.Parallel()

	got, ok := Latest([]string{"1.0.0-alpha.2", "1.0.0-alpha.10", "1.0.0-alpha.9"}, true)
	if !ok || got != "1.0.0-alpha.10" {
		t.Fatalf("Latest = %q, %v; want 1.0.0-alpha.10", got, ok)
	}

	got, ok = Latest([]string{"9.0.0", "10.0.0", "2.0.0"}, false)
	if !ok || got != "10.0.0" {
		t.Fatalf("Latest = %q, %v; want 10.0.0", got, ok)
	}
}

func TestSelectLatest_Empty(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		nil,
		{},
		{"main", "test", "1.2", ""},
	}

	for _, in := range inputs {
		for _, pre := range []bool{true, false} {
			if got, ok := Latest(in, pre); ok {
				t.Fatalf("Latest(%v, %v) = %q; want none", in, pre, got)
			}
		}
	}

	// only prereleases and they are excluded
	if got, ok := Latest([]string{"1.0.0-rc.1", "1.0.0.beta"}, false); ok {
		t.Fatalf("Latest = %q; want none", got)
	}
}

func TestSelectLatest_Single(t *testing.T) {
	t.Parallel()

	for _, pre := range []bool{true, false} {
		got, ok := Latest([]string{"v0.1.0"}, pre)
		if !ok || got != "v0.1.0" {
			t.Fatalf("Latest(single, %v) = %q, %v; want v0.1.0", pre, got, ok)
		}
	}
}

// The released prefix only keeps the first patch digit, so a prerelease of
// 2.13.55 resolves to an existing 2.13.5 tag.
func TestSelectLatest_ReleasedPrefixQuirk(t *testing.T) {
	t.Parallel()

	got, ok := Latest([]string{"2.13.5", "2.13.55-rc.1"}, true)
	if !ok || got != "2.13.5" {
		t.Fatalf("Latest = %q, %v; want 2.13.5", got, ok)
	}
}
