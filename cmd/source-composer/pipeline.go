package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"source-composer/internal/cache"
	"source-composer/internal/compose"
	"source-composer/internal/config"
	"source-composer/internal/diagnostic"
	"source-composer/internal/source"
)

// session carries the settings shared by all subcommands.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *cache.DiskCache
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if jobs, err := flags.GetInt("jobs"); err == nil && jobs >= 0 {
		cfg.Jobs = jobs
	}

	if dir, err := flags.GetString("cache-dir"); err == nil && dir != "" {
		cfg.CacheDir = dir
	}

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}

	switch colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return nil, fmt.Errorf("unknown color mode %q", colorMode)
	}

	s := &session{cfg: cfg, logger: logger}

	if cfg.CacheDir != "" {
		s.cache, err = cache.Open(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// inputPaths expands directories into their YAML files, sorted by name.
func inputPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}

		var found []string
		for _, e := range entries {
			ext := filepath.Ext(e.Name())
			if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}

		slices.Sort(found)
		paths = append(paths, found...)
	}

	return paths, nil
}

// loadFiles reads every input. A file that cannot be read or parsed is
// reported as an error diagnostic and left out of the run.
func (s *session) loadFiles(args []string) ([]*source.File, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	paths, err := inputPaths(args)
	if err != nil {
		return nil, diags, err
	}

	files := make([]*source.File, 0, len(paths))
	hits := 0

	for _, p := range paths {
		f, hit, err := s.cache.Load(p)
		if err != nil {
			diags.AddError(diagnostic.CodeLoadFailed, err.Error(), "", "")
			continue
		}

		if hit {
			hits++
		}

		files = append(files, f)
	}

	s.logger.Debug("loaded declaration files", "files", len(files), "cache_hits", hits, "cache_dir", s.cache.Dir())

	return files, diags, nil
}

func (s *session) compose(args []string) (*compose.Result, error) {
	files, loadDiags, err := s.loadFiles(args)
	if err != nil {
		return nil, err
	}

	res, err := compose.New(s.cfg.Compose(), s.logger).Compose(files)
	if err != nil {
		return nil, err
	}

	res.Diagnostics.Merge(loadDiags)

	return res, nil
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// printDiagnostics writes one line per diagnostic, errors first.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, withInfos bool) {
	emit := func(list []diagnostic.Diagnostic, c *color.Color) {
		for _, d := range list {
			label := c.Sprint(d.Severity.String())
			fmt.Fprintf(w, "%s: %s\n", label, d.String())
		}
	}

	emit(diags.Errors, errorColor)
	emit(diags.Warnings, warningColor)

	if withInfos {
		emit(diags.Infos, infoColor)
	}
}

func summary(diags *diagnostic.Diagnostics) string {
	parts := []string{
		fmt.Sprintf("%d error(s)", len(diags.Errors)),
		fmt.Sprintf("%d warning(s)", len(diags.Warnings)),
	}

	if len(diags.Infos) > 0 {
		parts = append(parts, fmt.Sprintf("%d info(s)", len(diags.Infos)))
	}

	return strings.Join(parts, ", ")
}
