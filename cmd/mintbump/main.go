/*
Package main is the mintbump cli tool.
It bumps package versions pinned in a Mintfile to the latest tag of each
package's git repository.
*/
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/woozymasta/mintbump"
	"github.com/woozymasta/mintbump/internal/config"
	"github.com/woozymasta/mintbump/internal/gitremote"
	"github.com/woozymasta/mintbump/mintfile"

	"github.com/jessevdk/go-flags"
)

const (
	exitOK    = 0
	exitUsage = 1
	exitRun   = 2
)

type Options struct {
	// betteralign:ignore

	// Which packages to update
	OptionsSelect OptionsSelect `group:"Package selection"`
	// How versions are picked
	OptionsResolve OptionsResolve `group:"Version resolution"`
	// git remote access
	OptionsRemote OptionsRemote `group:"Remote"`
	// Output format
	OptionsOutput OptionsOutput `group:"Output"`
	// Mint install locations
	OptionsMint OptionsMint `group:"Mint"`

	Args struct {
		Name string `positional-arg-name:"NAME" description:"Package name (same as --name)"`
	} `positional-args:"yes"`
}

type OptionsSelect struct {
	All      bool     `short:"a" long:"all"      description:"Update all packages"`
	Name     string   `short:"n" long:"name"     description:"Update packages whose name contains NAME (case-sensitive)"`
	Mintfile string   `short:"m" long:"mintfile" description:"Custom path to a Mintfile (default: Mintfile)"`
	Ignore   []string `short:"i" long:"ignore"   description:"Package name to leave untouched (repeatable)"`
	Config   string   `short:"c" long:"config"   description:"YAML file with defaults" default:".mintbump.yml"`
}

type OptionsResolve struct {
	Prerelease   bool   `short:"p" long:"prerelease"    description:"Use prerelease versions (alpha, beta, ...)"`
	NoPrerelease bool   `long:"no-prerelease"           description:"Use releases only, even if the config file enables prereleases"`
	MaxBump      string `short:"b" long:"max-bump"      description:"Hold back bumps above this level" choice:"any" choice:"major" choice:"minor" choice:"patch" choice:"prerelease"`
	DryRun       bool   `short:"d" long:"dry-run"       description:"Print bumps without writing the Mintfile"`
}

type OptionsRemote struct {
	Git     string        `long:"git"     description:"git executable" default:"git"`
	Timeout time.Duration `long:"timeout" description:"Timeout of one git ls-remote call (default: 30s)"`
	Retries uint64        `long:"retries" description:"Retries of a failed git ls-remote call" default:"2"`
}

type OptionsOutput struct {
	JSON    bool `short:"j" long:"json"    description:"Print a JSON report instead of bump lines"`
	Verbose bool `short:"v" long:"verbose" description:"Log per-package decisions to stderr"`
}

type OptionsMint struct {
	MintPath string `long:"mint-path"      env:"MINT_PATH"      description:"Mint home directory (default: ~/.mint)"`
	LinkPath string `long:"mint-link-path" env:"MINT_LINK_PATH" description:"Mint executable link directory (default: ~/.mint/bin)"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opt Options
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "mintbump"
	parser.LongDescription = `Updates versions of the packages defined in the Mintfile
to the latest tag found in each package's git repository.`

	if _, err := parser.ParseArgs(args); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	level := slog.LevelWarn
	if opt.OptionsOutput.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(opt.OptionsSelect.Config, parser.FindOptionByLongName("config").IsSet())
	if err != nil {
		fmt.Fprintf(stderr, "mintbump: %v\n", err)
		return exitRun
	}

	mintPath, linkPath := mintDirs(opt.OptionsMint)
	logger.Debug("mint environment", "mint_path", mintPath, "link_path", linkPath)

	name := opt.OptionsSelect.Name
	if name == "" {
		name = opt.Args.Name
	}

	if !opt.OptionsSelect.All && name == "" {
		fmt.Fprintln(stderr, "mintbump: please specify package name or --all")
		parser.WriteHelp(stderr)
		return exitRun
	}

	path := firstNonEmpty(opt.OptionsSelect.Mintfile, cfg.Mintfile, "Mintfile")

	retries := opt.OptionsRemote.Retries
	if !parser.FindOptionByLongName("retries").IsSet() && cfg.Retries != nil {
		retries = *cfg.Retries
	}

	timeout := opt.OptionsRemote.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	maxBump := opt.OptionsResolve.MaxBump
	if maxBump == "" {
		maxBump = cfg.MaxBump
	}

	// --no-prerelease turns off `prerelease: true` from the config file.
	prerelease := opt.OptionsResolve.Prerelease || cfg.Prerelease
	if opt.OptionsResolve.NoPrerelease {
		prerelease = false
	}

	lister := gitremote.New(
		gitremote.WithGit(opt.OptionsRemote.Git),
		gitremote.WithTimeout(timeout),
		gitremote.WithRetries(retries),
	)

	updater := mintbump.NewUpdater(lister, mintfile.FileStore{},
		mintbump.WithLogger(logger),
		mintbump.WithOptions(mintbump.Options{
			Prerelease: prerelease,
			MaxBump:    mintbump.ParseBump(maxBump),
			Ignore:     append(append([]string(nil), cfg.Ignore...), opt.OptionsSelect.Ignore...),
			DryRun:     opt.OptionsResolve.DryRun,
		}),
	)

	var res *mintbump.Result
	if opt.OptionsSelect.All {
		res, err = updater.UpdateAll(ctx, path)
	} else {
		res, err = updater.UpdateNamed(ctx, path, name)
	}
	if err != nil {
		fmt.Fprintf(stderr, "mintbump: %v\n", err)
		return exitRun
	}

	if opt.OptionsOutput.JSON {
		if err := writeReport(stdout, res); err != nil {
			fmt.Fprintf(stderr, "mintbump: %v\n", err)
			return exitRun
		}
		return exitOK
	}

	for _, r := range res.Applied {
		fmt.Fprintln(stdout, r.String())
	}
	for _, r := range res.Held {
		fmt.Fprintf(stderr, "hold %s at %s (%s bump to %s)\n", r.Repo, r.From, r.Bump, r.To)
	}

	return exitOK
}

// loadConfig reads the defaults file. A missing file is fine unless the
// path was given explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, config.ErrNotFound) && !explicit {
		return &config.Config{}, nil
	}

	return nil, err
}

// mintDirs resolves Mint's home and link directories, "~" expanded.
func mintDirs(o OptionsMint) (mintPath, linkPath string) {
	mintPath = expandHome(firstNonEmpty(o.MintPath, "~/.mint"))
	linkPath = expandHome(firstNonEmpty(o.LinkPath, "~/.mint/bin"))

	return mintPath, linkPath
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && rest[0] != '/') {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}

	return filepath.Join(home, rest)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}

	return ""
}

type reportBump struct {
	mintbump.Replacement
	PURL string `json:"purl,omitempty"`
}

type report struct {
	Mintfile string       `json:"mintfile"`
	Written  bool         `json:"written"`
	Bumps    []reportBump `json:"bumps"`
	Held     []reportBump `json:"held,omitempty"`
}

func writeReport(w io.Writer, res *mintbump.Result) error {
	rep := report{
		Mintfile: res.Path,
		Written:  res.Written,
		Bumps:    make([]reportBump, 0, len(res.Applied)),
	}
	for _, r := range res.Applied {
		rep.Bumps = append(rep.Bumps, reportBump{Replacement: r, PURL: r.PURL()})
	}
	for _, r := range res.Held {
		rep.Held = append(rep.Held, reportBump{Replacement: r, PURL: r.PURL()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}
