package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"source-composer/internal/annotation"
	"source-composer/internal/common"
	"source-composer/internal/diagnostic"
	"source-composer/internal/model"
	"source-composer/internal/source"
)

// ErrNilFile is returned when a nil file is passed for normalization.
var ErrNilFile = errors.New("nil source file")

// Normalizer converts source files into DeclEntry values.
type Normalizer struct {
	extractor *annotation.Extractor
	jobs      int
	logger    *slog.Logger
}

// New creates a Normalizer recognizing directives with the given prefix.
// A non-positive jobs value uses GOMAXPROCS; a nil logger uses slog.Default().
func New(prefix string, jobs int, logger *slog.Logger) *Normalizer {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Normalizer{
		extractor: annotation.NewExtractor(prefix),
		jobs:      jobs,
		logger:    logger,
	}
}

type fileResult struct {
	entries []*DeclEntry
	diags   diagnostic.Diagnostics
}

// NormalizeFiles normalizes every file in parallel and returns the entries
// in file order, each file's entries in declaration order.
func (n *Normalizer) NormalizeFiles(files []*source.File) ([]*DeclEntry, diagnostic.Diagnostics, error) {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(n.jobs)

	for i, f := range files {
		g.Go(func() error {
			if f == nil {
				return fmt.Errorf("file %d: %w", i, ErrNilFile)
			}

			entries, diags := n.NormalizeFile(i, f)
			results[i] = fileResult{entries: entries, diags: diags}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	var (
		all   []*DeclEntry
		diags diagnostic.Diagnostics
	)

	for _, r := range results {
		for _, e := range r.entries {
			e.Order.Seq = len(all)
			all = append(all, e)
		}

		diags.Merge(r.diags)
	}

	n.logger.Debug("normalized declarations",
		slog.Int("files", len(files)),
		slog.Int("entries", len(all)),
		slog.Int("warnings", len(diags.Warnings)))

	return all, diags, nil
}

// NormalizeFile normalizes a single file. index is the file's position in
// the run; Seq is left relative to the file.
func (n *Normalizer) NormalizeFile(index int, f *source.File) ([]*DeclEntry, diagnostic.Diagnostics) {
	fn := &fileNormalizer{
		file:  f,
		index: index,
		scope: n.extractor.ScanFile(f),
	}
	fn.diags = fn.scope.Diagnostics()

	for i := range f.Declarations {
		d := &f.Declarations[i]
		if len(d.ParentPath) > 0 {
			fn.flatDeclaration(d)
			continue
		}

		fn.declaration(d, "", false, true)
	}

	return fn.entries, fn.diags
}

type fileNormalizer struct {
	file    *source.File
	index   int
	scope   *annotation.FileScope
	entries []*DeclEntry
	ranges  []source.Range
	diags   diagnostic.Diagnostics
}

func (fn *fileNormalizer) warn(code, msg, identity, member string, offset int) {
	fn.diags.Add(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     code,
		Message:  msg,
		Identity: identity,
		Member:   member,
		File:     fn.file.Path,
		Offset:   offset,
	})
}

func (fn *fileNormalizer) add(e *DeclEntry, r source.Range) {
	e.Order.Seq = len(fn.entries)
	fn.entries = append(fn.entries, e)
	fn.ranges = append(fn.ranges, r)
}

// container returns the innermost entry of this file with the given identity
// whose range encloses r.
func (fn *fileNormalizer) container(identity string, r source.Range) *DeclEntry {
	for i := len(fn.entries) - 1; i >= 0; i-- {
		e := fn.entries[i]
		if e.Identity == identity && e.IsType() && fn.ranges[i].Contains(r) {
			return e
		}
	}

	return nil
}

// flatDeclaration handles a declaration listed at file level with a parent
// path. It is body-nested if an enclosing declaration of the same file
// contains it, otherwise it is treated as declared in an extension.
func (fn *fileNormalizer) flatDeclaration(d *source.RawDeclaration) {
	parent := common.PathIdentity(d.ParentPath, "")
	if !fn.named(d, parent) {
		return
	}

	owner := fn.container(parent, d.Range)

	switch d.Kind {
	case source.KindFunction, source.KindGlobal:
		if owner == nil {
			fn.warn(diagnostic.CodeOrphanMember,
				fmt.Sprintf("%s %q has no enclosing declaration in this file", d.Kind, d.Name),
				parent, d.Name, d.Range.Start)

			return
		}

		fn.nested(owner, d)
	default:
		if owner == nil {
			fn.declaration(d, parent, true, false)
			return
		}

		fn.declaration(d, owner.Identity, owner.IsExtension(), false)
	}
}

func (fn *fileNormalizer) declaration(d *source.RawDeclaration, parent string, inExtension, topLevel bool) {
	if !fn.named(d, parent) {
		return
	}

	identity := common.JoinIdentity(parent, d.Name)

	if !d.Kind.IsValid() {
		fn.warn(diagnostic.CodeUnknownKind,
			fmt.Sprintf("unknown declaration kind %q, declaration dropped", d.Kind),
			identity, "", d.Range.Start)

		return
	}

	e := &DeclEntry{
		Identity:           identity,
		Name:               common.LocalName(identity),
		Kind:               d.Kind,
		ParentIdentity:     parent,
		InExtension:        inExtension,
		AccessLevel:        model.ParseAccessLevel(d.AccessLevel),
		Modifiers:          slices.Clone(d.Modifiers),
		Annotations:        fn.scope.ForDeclaration(d, topLevel),
		InheritedTypeNames: slices.Clone(d.InheritedTypeNames),
		GenericParameters:  genericParameters(d.GenericParameters),
		Order: Order{
			File:   fn.index,
			Path:   fn.file.Path,
			Offset: d.Range.Start,
		},
	}

	for _, text := range d.GenericRequirements {
		req := model.ParseGenericRequirement(text)
		if req == nil {
			fn.warn(diagnostic.CodeMalformedRequirement,
				fmt.Sprintf("cannot parse generic requirement %q", text),
				identity, "", d.Range.Start)

			continue
		}

		e.GenericRequirements = append(e.GenericRequirements, req)
	}

	switch d.Kind {
	case source.KindTypealias:
		e.Typealias = &model.Typealias{
			Name:           e.Name,
			Identity:       identity,
			ParentIdentity: parent,
			TypeName:       model.ParseTypeName(d.TypeName),
			AccessLevel:    e.AccessLevel,
			Annotations:    e.Annotations,
		}
	case source.KindFunction:
		e.Function = fn.function(d, parent, topLevel)
	case source.KindGlobal:
		e.Global = fn.global(d, parent, topLevel)
	}

	fn.add(e, d.Range)

	if !e.IsType() {
		return
	}

	for i := range d.Members {
		fn.member(e, &d.Members[i])
	}
}

// named drops a declaration without a name.
func (fn *fileNormalizer) named(d *source.RawDeclaration, parent string) bool {
	if strings.TrimSpace(d.Name) != "" {
		return true
	}

	fn.warn(diagnostic.CodeMissingName,
		fmt.Sprintf("%s declaration without a name, dropped with its members", d.Kind),
		parent, "", d.Range.Start)

	return false
}

// nested handles a declaration found inside the body of e.
func (fn *fileNormalizer) nested(e *DeclEntry, d *source.RawDeclaration) {
	if !fn.named(d, e.Identity) {
		return
	}

	switch d.Kind {
	case source.KindFunction:
		e.Methods = append(e.Methods, fn.function(d, e.Identity, false))
	case source.KindGlobal:
		e.Variables = append(e.Variables, fn.global(d, e.Identity, false))
	default:
		fn.declaration(d, e.Identity, e.IsExtension(), false)
	}
}

func (fn *fileNormalizer) member(e *DeclEntry, m *source.RawMember) {
	switch m.Kind {
	case source.MemberVariable:
		e.Variables = append(e.Variables, fn.variable(e, m))
	case source.MemberMethod:
		e.Methods = append(e.Methods, fn.method(e, m))
	case source.MemberCase:
		e.Cases = append(e.Cases, fn.enumCase(m))
	case source.MemberDeclaration:
		if m.Declaration == nil {
			fn.warn(diagnostic.CodeUnknownKind, "declaration member without a declaration, dropped",
				e.Identity, m.Name, m.Range.Start)

			return
		}

		fn.nested(e, m.Declaration)
	default:
		fn.warn(diagnostic.CodeUnknownKind,
			fmt.Sprintf("unknown member kind %q, member dropped", m.Kind),
			e.Identity, m.Name, m.Range.Start)
	}
}
