package mintfile

import "strings"

// Package is one "repo@version" reference from a Mintfile.
type Package struct {
	Name    string `json:"name"`
	Repo    string `json:"repo"`
	Version string `json:"version,omitempty"`
}

// ParsePackage splits a manifest entry into repo and version.
//
//	org/repo@1.0.0                   -> org/repo, 1.0.0
//	git@host:org/repo.git@1.0.0      -> git@host:org/repo.git, 1.0.0
//	git@host:org/repo.git            -> git@host:org/repo.git, ""
//	org/repo                         -> org/repo, ""
func ParsePackage(entry string) Package {
	entry = strings.TrimSpace(entry)
	parts := strings.Split(entry, "@")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var repo, version string
	switch {
	case len(parts) == 3:
		repo = parts[0] + "@" + parts[1]
		version = parts[2]
	case len(parts) == 2 && strings.Contains(parts[1], ":"):
		repo = entry
	case len(parts) == 2:
		repo = parts[0]
		version = parts[1]
	default:
		repo = entry
	}

	return Package{Name: nameOf(repo), Repo: repo, Version: version}
}

// nameOf returns the last path component of repo without ".git".
func nameOf(repo string) string {
	name := repo
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}

	return strings.TrimSuffix(name, ".git")
}

// Line returns the manifest form "repo@version".
func (p Package) Line() string {
	return p.Repo + "@" + p.Version
}

// GitURL returns the remote locator handed to git.
//
// Repos with a scheme or an "@" (scp-like) are used as is. A repo whose
// first path segment looks like a host ("gitlab.com/org/repo") gets an
// https scheme; anything else is taken as a GitHub "org/repo".
func (p Package) GitURL() string {
	repo := p.Repo
	if strings.Contains(repo, "://") || strings.Contains(repo, "@") {
		return repo
	}

	host, _, _ := strings.Cut(repo, "/")
	if strings.Contains(host, ".") {
		return "https://" + withGitSuffix(repo)
	}

	return "https://github.com/" + withGitSuffix(repo)
}

// GitHubPath returns "org/repo" when the package is hosted on GitHub.
func (p Package) GitHubPath() (owner, name string, ok bool) {
	u := p.GitURL()
	for _, prefix := range []string{"https://github.com/", "http://github.com/", "git@github.com:", "ssh://git@github.com/"} {
		if rest, found := strings.CutPrefix(u, prefix); found {
			owner, name, ok = strings.Cut(strings.TrimSuffix(rest, ".git"), "/")
			if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
				return "", "", false
			}

			return owner, name, true
		}
	}

	return "", "", false
}

func withGitSuffix(repo string) string {
	if strings.HasSuffix(repo, ".git") {
		return repo
	}

	return repo + ".git"
}
