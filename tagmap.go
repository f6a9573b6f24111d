package mintbump

// TagVersionMap maps raw tags to their normalized versions, keeping the
// order in which tags were first seen.
type TagVersionMap struct {
	index   map[string]int
	entries []tagEntry
}

type tagEntry struct {
	tag     string
	version string
}

// NewTagVersionMap normalizes every tag and keeps the ones that pass.
// A tag seen twice keeps its first position and its last value.
func NewTagVersionMap(tags []string) *TagVersionMap {
	m := &TagVersionMap{
		index:   make(map[string]int, len(tags)),
		entries: make([]tagEntry, 0, len(tags)),
	}

	for _, t := range tags {
		v, ok := Normalize(t)
		if !ok {
			continue
		}
		m.set(t, v)
	}

	return m
}

func (m *TagVersionMap) set(tag, version string) {
	if i, ok := m.index[tag]; ok {
		m.entries[i].version = version
		return
	}

	m.index[tag] = len(m.entries)
	m.entries = append(m.entries, tagEntry{tag: tag, version: version})
}

// Len returns the number of entries.
func (m *TagVersionMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Get returns the normalized version stored for tag.
func (m *TagVersionMap) Get(tag string) (string, bool) {
	if m == nil {
		return "", false
	}

	i, ok := m.index[tag]
	if !ok {
		return "", false
	}

	return m.entries[i].version, true
}

// Tags returns the raw tags in insertion order.
func (m *TagVersionMap) Tags() []string {
	if m == nil {
		return nil
	}

	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.tag)
	}

	return out
}

// Filter returns a new map holding the entries whose version satisfies keep.
func (m *TagVersionMap) Filter(keep func(version string) bool) *TagVersionMap {
	out := &TagVersionMap{index: make(map[string]int)}
	if m == nil {
		return out
	}

	for _, e := range m.entries {
		if keep(e.version) {
			out.set(e.tag, e.version)
		}
	}

	return out
}
