package mintbump

import "github.com/woozymasta/semver"

// Bump classifies the distance between a pinned tag and its replacement.
type Bump uint8

const (
	// BumpUnknown is used when either side is not parseable as SemVer.
	// As a limit (Options.MaxBump) it means "no limit".
	BumpUnknown Bump = iota
	// BumpNone means same MAJOR.MINOR.PATCH and prerelease.
	BumpNone
	// BumpPrerelease means same MAJOR.MINOR.PATCH, different prerelease.
	BumpPrerelease
	// BumpPatch means a different PATCH.
	BumpPatch
	// BumpMinor means a different MINOR.
	BumpMinor
	// BumpMajor means a different MAJOR.
	BumpMajor
)

// String returns a stable textual representation for Bump.
func (b Bump) String() string {
	switch b {
	case BumpNone:
		return "none"
	case BumpPrerelease:
		return "prerelease"
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "unknown"
	}
}

// MarshalText encodes the bump as its String form.
func (b Bump) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseBump maps free-form tokens to Bump.
// Supported aliases (case-insensitive):
//
//	major:      "major","maj","x","1"
//	minor:      "minor","min","xy","2"
//	patch:      "patch","pth","xyz","3"
//	prerelease: "prerelease","pre","rc"
//	none:       "none","no","0"
//
// Anything else, including "any" and "", yields BumpUnknown (no limit).
func ParseBump(s string) Bump {
	switch toTok(s) {
	case "major", "maj", "x", "1":
		return BumpMajor
	case "minor", "min", "xy", "2":
		return BumpMinor
	case "patch", "pth", "xyz", "3":
		return BumpPatch
	case "prerelease", "pre", "rc":
		return BumpPrerelease
	case "none", "no", "0":
		return BumpNone
	default:
		return BumpUnknown
	}
}

// Within reports whether b does not exceed limit. An unknown bump is
// ranked as major; an unknown limit allows everything.
func (b Bump) Within(limit Bump) bool {
	if limit == BumpUnknown {
		return true
	}

	if b == BumpUnknown {
		b = BumpMajor
	}

	return b <= limit
}

// ClassifyBump compares two tags as SemVer and reports the highest
// component that changed.
func ClassifyBump(from, to string) Bump {
	a, ok := semver.Parse(from)
	if !ok || !a.Valid {
		return BumpUnknown
	}

	b, ok := semver.Parse(to)
	if !ok || !b.Valid {
		return BumpUnknown
	}

	switch {
	case a.Major != b.Major:
		return BumpMajor
	case a.Minor != b.Minor:
		return BumpMinor
	case a.Patch != b.Patch:
		return BumpPatch
	case a.Prerelease != b.Prerelease:
		return BumpPrerelease
	default:
		return BumpNone
	}
}
