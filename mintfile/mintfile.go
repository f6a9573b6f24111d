package mintfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned when the manifest path does not exist or is not a file.
var ErrNotFound = errors.New("mintfile not found")

// Mintfile is a parsed manifest together with its raw text.
type Mintfile struct {
	Path     string
	Text     string
	Packages []Package
}

// Parse returns the package references of a manifest in file order.
func Parse(text string) []Package {
	var out []Package
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out = append(out, ParsePackage(line))
	}

	return out
}

// Load reads and parses the manifest at path.
func Load(path string) (*Mintfile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)

	return &Mintfile{Path: path, Text: text, Packages: Parse(text)}, nil
}

// Names returns package names in file order.
func (m *Mintfile) Names() []string {
	out := make([]string, 0, len(m.Packages))
	for _, p := range m.Packages {
		out = append(out, p.Name)
	}

	return out
}

// FileStore loads and saves manifests on the local filesystem.
type FileStore struct{}

// Load implements the updater's store with the package-level Load.
func (FileStore) Load(path string) (*Mintfile, error) {
	return Load(path)
}

// Save overwrites path with text, keeping the current file mode.
func (FileStore) Save(path, text string) error {
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
