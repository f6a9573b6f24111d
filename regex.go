package mintbump

import "regexp"

var (
	// Normalized version: X.Y.Z followed by an optional suffix of [A-Za-z0-9.+-].
	versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+[A-Za-z0-9.+-]*$`)

	// Prerelease: X.Y.Z, a separator (".", "+" or "-") and at least one more char.
	// "1.0.0.alpha" matches too; that is not strict SemVer but is kept on purpose.
	prereleaseRe = regexp.MustCompile(`^\d+\.\d+\.\d+[.+-][A-Za-z0-9.+-]+$`)

	// Released prefix: X.Y and the first digit of Z only.
	releasedRe = regexp.MustCompile(`^\d+\.\d+\.\d`)
)

// Patterns returns the compiled patterns used by Normalize, IsPrerelease
// and ReleasedVersion, in that order.
func Patterns() (version, prerelease, released *regexp.Regexp) {
	return versionRe, prereleaseRe, releasedRe
}
