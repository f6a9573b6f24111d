/*
Package mintbump bumps package versions pinned in a Mint manifest
("Mintfile") to the latest tag of each package's git repository.

The package is network-agnostic: tags come from a TagLister and manifests
from a Store. Typical flow:

 1. List raw tags of a repository elsewhere (e.g. `git ls-remote --tags`).
 2. Call Latest (or NewTagVersionMap + SelectLatest) to pick the newest tag.
 3. Patch "repo@old" into "repo@new" with ApplyUpdates.

Updater wires these steps over a whole Mintfile.

Version notes:
  - A single leading "v" is accepted on input; the chosen tag is returned
    exactly as listed, "v" included.
  - Only X.Y.Z tags with an optional [A-Za-z0-9.+-] suffix are candidates.
  - Ordering is natural (numeric-aware) string order, not SemVer precedence,
    so "1.0.0-rc.1" sorts after "1.0.0". A prerelease that wins is replaced
    by its release when that release is among the candidates.
  - Any suffix after X.Y.Z marks a prerelease, including "1.0.0.alpha" and
    "1.0.0+build".

Usage example:

	raw := []string{"0.0.1", "1.0.0", "test", "2.0.0-rc.3+meta", "2.0.0", "3.0.0-alpha"}

	tag, ok := mintbump.Latest(raw, false)
	fmt.Println(tag, ok) // 2.0.0 true

	tag, ok = mintbump.Latest(raw, true)
	fmt.Println(tag, ok) // 3.0.0-alpha true
*/
package mintbump
