package annotation

import (
	"math"
	"sort"

	"source-composer/internal/diagnostic"
	"source-composer/internal/source"
)

// DefaultPrefix is the directive prefix used when none is configured.
const DefaultPrefix = "sourcery"

// Position orders comments and declarations inside a file. At equal
// offsets a leading comment sorts before the declaration it precedes,
// and the declaration before a trailing comment.
type Position struct {
	Offset int
	Rank   int
}

const (
	rankLeading = iota
	rankDecl
	rankTrailing
)

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Offset != q.Offset {
		return p.Offset < q.Offset
	}

	return p.Rank < q.Rank
}

// DeclPosition returns the position of a declaration or member starting at offset.
func DeclPosition(offset int) Position {
	return Position{Offset: offset, Rank: rankDecl}
}

// Extractor turns comment text into annotation maps.
type Extractor struct {
	parser *Parser
}

// NewExtractor creates an Extractor for the given directive prefix.
func NewExtractor(prefix string) *Extractor {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Extractor{parser: NewParser(prefix)}
}

// blockSpan is the region covered by a begin/end pair.
type blockSpan struct {
	start, end Position
	pairs      Map
}

func (b blockSpan) contains(p Position) bool {
	return !p.Before(b.start) && p.Before(b.end)
}

// FileScope holds the file and block directives of one file and answers
// annotation queries for the declarations inside it.
type FileScope struct {
	parser    *Parser
	fileLevel Map
	blocks    []blockSpan
	diags     diagnostic.Diagnostics
}

type commentEvent struct {
	pos  Position
	text string
}

// ScanFile walks every comment of f in source order, maintaining a stack of
// open blocks. Malformed pairs and unmatched blocks are recorded as
// diagnostics; a begin without end extends to the end of the file.
func (e *Extractor) ScanFile(f *source.File) *FileScope {
	s := &FileScope{parser: e.parser}

	var events []commentEvent
	for i := range f.Declarations {
		events = collectDeclaration(events, &f.Declarations[i])
	}

	for _, c := range f.Comments {
		events = append(events, commentEvent{pos: Position{Offset: c.Offset, Rank: rankLeading}, text: c.Text})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].pos.Before(events[j].pos)
	})

	var stack []blockSpan

	for _, ev := range events {
		for _, d := range e.parser.Directives(ev.text) {
			for _, err := range d.Errors {
				s.diags.Add(diagnostic.Diagnostic{
					Severity: diagnostic.DiagnosticWarning,
					Code:     diagnostic.CodeMalformedAnnotation,
					Message:  err.Error(),
					File:     f.Path,
					Offset:   ev.pos.Offset,
				})
			}

			switch d.Kind {
			case DirectiveBegin:
				stack = append(stack, blockSpan{start: ev.pos, pairs: d.Pairs})
			case DirectiveEnd:
				if len(stack) == 0 {
					s.diags.Add(diagnostic.Diagnostic{
						Severity: diagnostic.DiagnosticWarning,
						Code:     diagnostic.CodeUnmatchedBlock,
						Message:  "end directive without matching begin",
						File:     f.Path,
						Offset:   ev.pos.Offset,
					})

					continue
				}

				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				top.end = ev.pos
				s.blocks = append(s.blocks, top)
			case DirectiveFile:
				s.fileLevel = s.fileLevel.Merge(d.Pairs)
			}
		}
	}

	for _, open := range stack {
		s.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeUnmatchedBlock,
			Message:  "begin directive without matching end, extended to end of file",
			File:     f.Path,
			Offset:   open.start.Offset,
		})

		open.end = Position{Offset: math.MaxInt, Rank: rankTrailing}
		s.blocks = append(s.blocks, open)
	}

	// Outer blocks first so inner pairs overwrite them.
	sort.SliceStable(s.blocks, func(i, j int) bool {
		return s.blocks[i].start.Before(s.blocks[j].start)
	})

	return s
}

func collectDeclaration(events []commentEvent, d *source.RawDeclaration) []commentEvent {
	events = appendEvent(events, d.LeadingComment, d.Range.Start, rankLeading)

	for i := range d.Members {
		m := &d.Members[i]
		events = appendEvent(events, m.LeadingComment, m.Range.Start, rankLeading)

		for _, p := range m.Parameters {
			events = appendEvent(events, p.Comment, parameterOffset(&p, m.Range.Start), rankLeading)
		}

		if m.Declaration != nil {
			events = collectDeclaration(events, m.Declaration)
		}

		events = appendEvent(events, m.TrailingComment, m.Range.End, rankTrailing)
	}

	for _, p := range d.Parameters {
		events = appendEvent(events, p.Comment, parameterOffset(&p, d.Range.Start), rankLeading)
	}

	return appendEvent(events, d.TrailingComment, d.Range.End, rankTrailing)
}

func appendEvent(events []commentEvent, text string, offset, rank int) []commentEvent {
	if text == "" {
		return events
	}

	return append(events, commentEvent{pos: Position{Offset: offset, Rank: rank}, text: text})
}

func parameterOffset(p *source.RawParameter, fallback int) int {
	if p.Range.Start == 0 && p.Range.End == 0 {
		return fallback
	}

	return p.Range.Start
}

// Diagnostics returns the diagnostics recorded while scanning.
func (s *FileScope) Diagnostics() diagnostic.Diagnostics {
	return s.diags
}

// FileLevel returns the pairs of the file's file directives.
func (s *FileScope) FileLevel() Map {
	return s.fileLevel.Clone()
}

// Blocks returns the merged pairs of every block active at pos.
func (s *FileScope) Blocks(pos Position) Map {
	var m Map

	for _, b := range s.blocks {
		if b.contains(pos) {
			m = m.Merge(b.pairs)
		}
	}

	return m
}

// ForDeclaration returns the annotations of a declaration. File pairs
// apply only when topLevel is set.
func (s *FileScope) ForDeclaration(d *source.RawDeclaration, topLevel bool) Map {
	var m Map
	if topLevel {
		m = m.Merge(s.fileLevel)
	}

	m = m.Merge(s.Blocks(DeclPosition(d.Range.Start)))
	m = m.Merge(s.parser.Inline(d.LeadingComment))

	return m.Merge(s.parser.Inline(d.TrailingComment))
}

// ForMember returns the annotations of a member: active blocks plus its
// own inline pairs.
func (s *FileScope) ForMember(m *source.RawMember) Map {
	var out Map
	out = out.Merge(s.Blocks(DeclPosition(m.Range.Start)))
	out = out.Merge(s.parser.Inline(m.LeadingComment))

	return out.Merge(s.parser.Inline(m.TrailingComment))
}

// ForParameter returns the annotations of a parameter or associated value:
// active blocks at its position plus its adjacent comments. The enclosing
// member's own inline pairs are not inherited.
func (s *FileScope) ForParameter(p *source.RawParameter, memberOffset int) Map {
	var out Map
	out = out.Merge(s.Blocks(DeclPosition(parameterOffset(p, memberOffset))))

	return out.Merge(s.parser.Inline(p.Comment))
}
