package mintbump

// SelectLatest picks the raw tag of the latest version in m.
//
// Prereleases are dropped first unless includePrerelease is set. Versions
// are ordered with NaturalCompare; on equal versions the later entry wins.
// When the winner is a prerelease and the candidates also hold its release
// (see ReleasedVersion), the release tag is returned instead.
func SelectLatest(m *TagVersionMap, includePrerelease bool) (string, bool) {
	if !includePrerelease {
		m = m.Filter(func(v string) bool { return !IsPrerelease(v) })
	}

	if m.Len() == 0 {
		return "", false
	}

	best := m.entries[0]
	for _, e := range m.entries[1:] {
		if NaturalCompare(e.version, best.version) >= 0 {
			best = e
		}
	}

	if !IsPrerelease(best.version) {
		return best.tag, true
	}

	released, ok := ReleasedVersion(best.version)
	if !ok {
		return best.tag, true
	}

	sibling := ""
	for _, e := range m.entries {
		if e.version == released {
			sibling = e.tag
		}
	}

	if sibling != "" {
		return sibling, true
	}

	return best.tag, true
}

// Latest builds a TagVersionMap from raw tags and runs SelectLatest on it.
func Latest(tags []string, includePrerelease bool) (string, bool) {
	return SelectLatest(NewTagVersionMap(tags), includePrerelease)
}
