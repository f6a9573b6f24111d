package mintbump

import "strings"

// Normalize turns a raw tag into a comparable version string.
// One leading "v" is stripped; the rest must look like X.Y.Z with an
// optional suffix, otherwise ok is false. Any suffix is kept untouched.
func Normalize(tag string) (string, bool) {
	t := strings.TrimPrefix(tag, "v")
	if !versionRe.MatchString(t) {
		return "", false
	}

	return t, true
}

// IsPrerelease reports whether a normalized version carries a suffix after
// X.Y.Z introduced by ".", "+" or "-".
func IsPrerelease(version string) bool {
	return prereleaseRe.MatchString(version)
}

// ReleasedVersion returns the release prefix of version, used to find a
// release sibling of a prerelease.
//
// The prefix is X.Y plus only the first digit of Z, so "2.13.55-rc" maps to
// "2.13.5". Callers rely on this exact behavior.
func ReleasedVersion(version string) (string, bool) {
	m := releasedRe.FindString(version)
	if m == "" {
		return "", false
	}

	return m, true
}
