package mintbump

import (
	packageurl "github.com/package-url/packageurl-go"

	"github.com/woozymasta/mintbump/mintfile"
)

// PURL returns the package URL of the new version, e.g.
// "pkg:github/realm/swiftlint@0.54.0". Only GitHub-hosted repos have one;
// others yield "".
func (r Replacement) PURL() string {
	owner, name, ok := mintfile.Package{Repo: r.Repo}.GitHubPath()
	if !ok {
		return ""
	}

	return packageurl.NewPackageURL(packageurl.TypeGithub, owner, name, r.To, nil, "").ToString()
}
