// Package config loads optional mintbump defaults from a YAML file.
//
//	mintfile: Tools/Mintfile
//	prerelease: false
//	max_bump: minor
//	ignore:
//	  - SwiftLint
//	timeout: 45s
//	retries: 3
//
// Command-line flags override every value set here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".mintbump.yml"

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("config not found")

// Config holds defaults for a mintbump run.
type Config struct {
	Mintfile   string        `yaml:"mintfile"`
	Prerelease bool          `yaml:"prerelease"`
	MaxBump    string        `yaml:"max_bump"`
	Ignore     []string      `yaml:"ignore"`
	Timeout    time.Duration `yaml:"timeout"`
	Retries    *uint64       `yaml:"retries"`
}

// Parse decodes a config document. Unknown keys are rejected; an empty
// document yields a zero Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if c.Timeout < 0 {
		return nil, fmt.Errorf("parse config: negative timeout %v", c.Timeout)
	}

	return &c, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}
