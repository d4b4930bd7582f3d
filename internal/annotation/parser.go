package annotation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	keyPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)
	numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// MalformedError describes an annotation pair that could not be parsed.
type MalformedError struct {
	Text   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed annotation %q: %s", e.Text, e.Reason)
}

// DirectiveKind is the scope a directive applies to.
type DirectiveKind int

const (
	DirectiveInline DirectiveKind = iota
	DirectiveBegin
	DirectiveEnd
	DirectiveFile
)

// Directive is one parsed directive line.
type Directive struct {
	Kind   DirectiveKind
	Pairs  Map
	Errors []error
}

// Parser recognizes directives carrying a fixed prefix.
type Parser struct {
	prefix string
}

// NewParser creates a Parser for directives starting with "<prefix>:".
func NewParser(prefix string) *Parser {
	return &Parser{prefix: prefix + ":"}
}

// Directives returns the directives found in comment text, in order.
// Lines that are not directives are ignored.
func (p *Parser) Directives(comment string) []Directive {
	var out []Directive

	for _, frag := range fragments(comment) {
		rest, ok := strings.CutPrefix(frag, p.prefix)
		if !ok {
			continue
		}

		rest = strings.TrimSpace(rest)

		var d Directive

		switch {
		case rest == "end" || strings.HasPrefix(rest, "end "):
			d.Kind = DirectiveEnd
		case strings.HasPrefix(rest, "begin:"):
			d.Kind = DirectiveBegin
			d.Pairs, d.Errors = ParsePairs(strings.TrimPrefix(rest, "begin:"))
		case strings.HasPrefix(rest, "file:"):
			d.Kind = DirectiveFile
			d.Pairs, d.Errors = ParsePairs(strings.TrimPrefix(rest, "file:"))
		default:
			d.Kind = DirectiveInline
			d.Pairs, d.Errors = ParsePairs(rest)
		}

		out = append(out, d)
	}

	return out
}

// Inline returns the merged pairs of every inline directive in comment.
func (p *Parser) Inline(comment string) Map {
	var m Map

	for _, d := range p.Directives(comment) {
		if d.Kind == DirectiveInline {
			m = m.Merge(d.Pairs)
		}
	}

	return m
}

// ParsePairs parses a comma-separated list of "key" or "key = value" pairs.
// Malformed pairs are skipped and reported; later keys overwrite earlier ones.
func ParsePairs(text string) (Map, []error) {
	var (
		m    Map
		errs []error
	)

	for _, seg := range splitOutsideQuotes(text, ',') {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		key, raw, hasValue := cutOutsideQuotes(seg, '=')
		key = strings.TrimSpace(key)

		if !keyPattern.MatchString(key) {
			errs = append(errs, &MalformedError{Text: seg, Reason: "invalid key"})
			continue
		}

		if !hasValue {
			m = m.Merge(Map{key: True()})
			continue
		}

		v, err := ParseValue(raw)
		if err != nil {
			errs = append(errs, &MalformedError{Text: seg, Reason: err.Error()})
			continue
		}

		m = m.Merge(Map{key: v})
	}

	return m, errs
}

// ParseValue parses the right-hand side of a pair: a quoted string, a
// number, or otherwise a bare string.
func ParseValue(raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}, fmt.Errorf("missing value")
	}

	if q := raw[0]; q == '"' || q == '\'' {
		if len(raw) < 2 || raw[len(raw)-1] != q {
			return Value{}, fmt.Errorf("unterminated quote")
		}

		inner := raw[1 : len(raw)-1]

		return String(strings.ReplaceAll(inner, `\`+string(q), string(q))), nil
	}

	if numberPattern.MatchString(raw) {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(n), nil
		}
	}

	return String(raw), nil
}

// fragments splits comment text into trimmed directive candidates:
// one per line comment and one per line of a block comment.
func fragments(text string) []string {
	var out []string

	for len(text) > 0 {
		switch {
		case strings.HasPrefix(text, "/*"):
			body := text[2:]

			end := strings.Index(body, "*/")
			if end < 0 {
				end = len(body)
				text = ""
			} else {
				text = body[end+2:]
			}

			for _, line := range strings.Split(body[:end], "\n") {
				out = appendFragment(out, strings.TrimLeft(strings.TrimSpace(line), "*!"))
			}

		case strings.HasPrefix(text, "//"):
			line, rest, _ := strings.Cut(text, "\n")
			out = appendFragment(out, strings.TrimLeft(line, "/!"))
			text = rest

		default:
			next := len(text)
			for _, marker := range []string{"\n", "/*", "//"} {
				if i := strings.Index(text, marker); i >= 0 && i < next {
					next = i
				}
			}

			if next == 0 {
				next = 1
			}

			out = appendFragment(out, text[:next])
			text = text[next:]
		}
	}

	return out
}

func appendFragment(out []string, frag string) []string {
	if frag = strings.TrimSpace(frag); frag != "" {
		out = append(out, frag)
	}

	return out
}

// splitOutsideQuotes splits s on sep, ignoring separators inside quotes.
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string

	start := 0
	for i := 0; i < len(s); i++ {
		if j := skipQuoted(s, i); j > i {
			i = j - 1
			continue
		}

		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

// cutOutsideQuotes is strings.Cut that ignores sep inside quotes.
func cutOutsideQuotes(s string, sep byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if j := skipQuoted(s, i); j > i {
			i = j - 1
			continue
		}

		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}

	return s, "", false
}

// skipQuoted returns the index after the quoted run starting at i,
// or i if s[i] does not open a quote. An unterminated quote runs to
// the end of s.
func skipQuoted(s string, i int) int {
	q := s[i]
	if q != '"' && q != '\'' {
		return i
	}

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1
		}
	}

	return len(s)
}
