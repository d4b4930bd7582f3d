package compose

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"source-composer/internal/diagnostic"
	"source-composer/internal/model"
	"source-composer/internal/normalize"
	"source-composer/internal/source"
)

// Composer runs the composition pipeline.
type Composer struct {
	config     Config
	logger     *slog.Logger
	normalizer *normalize.Normalizer
}

// New creates a Composer. A nil logger uses slog.Default().
func New(config Config, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Composer{
		config:     config,
		logger:     logger,
		normalizer: normalize.New(config.Prefix, config.Jobs, logger),
	}
}

// Compose normalizes the files and composes the resulting declarations.
func (c *Composer) Compose(files []*source.File) (*Result, error) {
	entries, diags, err := c.normalizer.NormalizeFiles(files)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize declarations: %w", err)
	}

	return c.ComposeEntries(entries, diags)
}

// ComposeEntries composes already normalized entries. diags carries the
// diagnostics recorded before composition. The entries' members become
// part of the returned graph and must not be composed again.
func (c *Composer) ComposeEntries(entries []*normalize.DeclEntry, diags diagnostic.Diagnostics) (*Result, error) {
	r := newRun(c.config, diags)

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b *normalize.DeclEntry) int {
		return cmp.Compare(a.Order.Seq, b.Order.Seq)
	})

	if err := r.merge(sorted); err != nil {
		return nil, err
	}

	c.logger.Debug("merged declarations",
		slog.Int("entries", len(sorted)),
		slog.Int("types", r.scope.graph.Len()))

	if err := r.resolveAliases(); err != nil {
		return nil, err
	}

	c.logger.Debug("resolved typealiases",
		slog.Int("aliases", len(r.aliases)),
		slog.Int("types", r.scope.graph.Len()))

	r.link()

	c.logger.Debug("linked references",
		slog.Int("links", r.links),
		slog.Int("unresolved", r.unresolved),
		slog.Int("types", r.scope.graph.Len()))

	r.flatten()

	res := r.result()

	c.logger.Info("composition finished",
		slog.Int("types", len(res.Types)),
		slog.Int("typealiases", len(res.Typealiases)),
		slog.Int("functions", len(res.Functions)),
		slog.Int("warnings", len(res.Diagnostics.Warnings)),
		slog.Int("errors", len(res.Diagnostics.Errors)))

	return res, nil
}

// run holds the state of one composition.
type run struct {
	config  Config
	rawSet  map[string]bool
	scope   *resolver
	diags   diagnostic.Diagnostics
	aliases []*model.Typealias

	topAliases []*model.Typealias
	functions  []*model.Method
	globals    []*model.Variable

	// aliasState tracks resolution progress per alias identity.
	aliasState map[string]aliasState
	// reported holds the unresolved names already diagnosed.
	reported map[string]bool

	links      int
	unresolved int
}

func newRun(config Config, diags diagnostic.Diagnostics) *run {
	raw := make(map[string]bool, len(config.RawRepresentableTypes))
	for _, name := range config.RawRepresentableTypes {
		raw[name] = true
	}

	return &run{
		config:     config,
		rawSet:     raw,
		scope:      newResolver(),
		diags:      diags,
		aliasState: make(map[string]aliasState),
		reported:   make(map[string]bool),
	}
}

func (r *run) result() *Result {
	return &Result{
		Types:       r.scope.graph.Types(),
		Typealiases: r.topAliases,
		Functions:   r.functions,
		Globals:     r.globals,
		Diagnostics: r.diags,
		scope:       r.scope,
	}
}

func (r *run) warn(code, msg, identity, member string) {
	r.diags.AddWarning(code, msg, identity, member)
}
