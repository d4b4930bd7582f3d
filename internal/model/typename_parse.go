package model

import (
	"strings"
	"unicode"
)

var specifiers = map[string]bool{
	"inout":       true,
	"some":        true,
	"any":         true,
	"borrowing":   true,
	"consuming":   true,
	"sending":     true,
	"__owned":     true,
	"__shared":    true,
	"isolated":    true,
	"nonisolated": true,
}

// ParseTypeName parses a type expression. Text that does not parse is
// kept as a plain name; parsing never fails.
func ParseTypeName(text string) *TypeName {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	p := &typeParser{src: text}

	t, ok := p.parseType()
	if p.skipSpace(); !ok || p.pos != len(p.src) {
		return NewTypeName(text)
	}

	return t
}

// ParseGenericRequirement parses "T: P" or "T.Element == U".
func ParseGenericRequirement(text string) *GenericRequirement {
	if left, right, ok := strings.Cut(text, "=="); ok {
		return &GenericRequirement{
			LeftTypeName:  ParseTypeName(left),
			RightTypeName: ParseTypeName(right),
			Relationship:  "==",
		}
	}

	if left, right, ok := strings.Cut(text, ":"); ok {
		return &GenericRequirement{
			LeftTypeName:  ParseTypeName(left),
			RightTypeName: ParseTypeName(right),
			Relationship:  ":",
		}
	}

	return nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *typeParser) consume(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}

	return false
}

// consumeWord consumes s only if it is a whole word.
func (p *typeParser) consumeWord(s string) bool {
	p.skipSpace()

	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, s) || (len(rest) > len(s) && isIdentByte(rest[len(s)])) {
		return false
	}

	p.pos += len(s)

	return true
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func (p *typeParser) ident() string {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}

	return p.src[start:p.pos]
}

// dottedIdent reads "A.B.C" (no spaces around dots).
func (p *typeParser) dottedIdent() string {
	p.skipSpace()

	start := p.pos
	if p.ident() == "" {
		return ""
	}

	for p.pos+1 < len(p.src) && p.src[p.pos] == '.' && isIdentByte(p.src[p.pos+1]) {
		p.pos++
		p.ident()
	}

	return p.src[start:p.pos]
}

// parseType parses: attributes? specifier? postfix ('&' postfix)*
func (p *typeParser) parseType() (*TypeName, bool) {
	p.skipSpace()
	start := p.pos

	var attrs []string

	for p.peek() == '@' {
		p.pos++

		name := p.ident()
		if name == "" {
			return nil, false
		}

		attr := "@" + name
		if p.pos < len(p.src) && p.src[p.pos] == '(' {
			end := strings.IndexByte(p.src[p.pos:], ')')
			if end < 0 {
				return nil, false
			}

			attr += p.src[p.pos : p.pos+end+1]
			p.pos += end + 1
		}

		attrs = append(attrs, attr)
	}

	var spec string

	save := p.pos
	if word := p.ident(); specifiers[word] && p.peek() != 0 && p.peek() != ',' && p.peek() != ')' && p.peek() != ':' {
		spec = word
	} else {
		p.pos = save
	}

	first, ok := p.parsePostfix()
	if !ok {
		return nil, false
	}

	t := first
	if p.peek() == '&' {
		t = &TypeName{Composition: []*TypeName{first}}
		for p.consume("&") {
			next, ok := p.parsePostfix()
			if !ok {
				return nil, false
			}

			t.Composition = append(t.Composition, next)
		}

		t.Unwrapped = t.render()
	}

	t.Attributes = append(attrs, t.Attributes...)
	if spec != "" {
		t.Specifier = spec
	}

	t.Name = strings.TrimSpace(p.src[start:p.pos])

	return t, true
}

// parsePostfix parses a primary followed by '?' / '!' markers.
func (p *typeParser) parsePostfix() (*TypeName, bool) {
	p.skipSpace()
	start := p.pos

	t, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}

	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '?':
			t.IsOptional = true
		case '!':
			t.IsImplicitlyUnwrapped = true
		default:
			t.Name = strings.TrimSpace(p.src[start:p.pos])
			return t, true
		}

		p.pos++
	}

	t.Name = strings.TrimSpace(p.src[start:p.pos])

	return t, true
}

func (p *typeParser) parsePrimary() (*TypeName, bool) {
	switch p.peek() {
	case '[':
		return p.parseCollection()
	case '(':
		return p.parseParenthesized()
	case 0:
		return nil, false
	}

	name := p.dottedIdent()
	if name == "" {
		return nil, false
	}

	if p.peek() != '<' {
		return NewTypeName(name), true
	}

	p.pos++

	g := &GenericType{Name: name}
	for {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}

		g.TypeParameters = append(g.TypeParameters, arg)

		if p.consume(">") {
			break
		}

		if !p.consume(",") {
			return nil, false
		}
	}

	t := &TypeName{Generic: g}
	t.Unwrapped = t.render()

	return t, true
}

func (p *typeParser) parseCollection() (*TypeName, bool) {
	p.pos++ // '['

	key, ok := p.parseType()
	if !ok {
		return nil, false
	}

	t := &TypeName{}

	if p.consume(":") {
		value, ok := p.parseType()
		if !ok {
			return nil, false
		}

		t.Dictionary = &DictionaryType{KeyTypeName: key, ValueTypeName: value}
	} else {
		t.Array = &ArrayType{ElementTypeName: key}
	}

	if !p.consume("]") {
		return nil, false
	}

	t.Unwrapped = t.render()

	return t, true
}

// parseParenthesized parses a tuple, a closure, or a parenthesized type.
func (p *typeParser) parseParenthesized() (*TypeName, bool) {
	p.pos++ // '('

	var elems []*TupleElement

	if !p.consume(")") {
		for {
			elem, ok := p.parseTupleElement()
			if !ok {
				return nil, false
			}

			elems = append(elems, elem)

			if p.consume(")") {
				break
			}

			if !p.consume(",") {
				return nil, false
			}
		}
	}

	isAsync := p.consumeWord("async")
	throws := p.consumeWord("throws") || p.consumeWord("rethrows")

	if p.consume("->") {
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}

		c := &ClosureType{ReturnTypeName: ret, Async: isAsync, Throws: throws}
		for _, e := range elems {
			c.Parameters = append(c.Parameters, e.TypeName)
		}

		t := &TypeName{Closure: c}
		t.Unwrapped = t.render()

		return t, true
	}

	if isAsync || throws {
		return nil, false
	}

	if len(elems) == 1 && elems[0].Name == "" {
		return elems[0].TypeName, true
	}

	t := &TypeName{Tuple: &TupleType{Elements: elems}}
	t.Unwrapped = t.render()

	return t, true
}

// parseTupleElement parses "name: Type", "_ name: Type" or "Type".
func (p *typeParser) parseTupleElement() (*TupleElement, bool) {
	save := p.pos

	if first := p.ident(); first != "" {
		name := first
		if second := p.ident(); second != "" {
			name = second
		}

		if p.peek() == ':' {
			p.pos++

			t, ok := p.parseType()
			if !ok {
				return nil, false
			}

			if name == "_" {
				name = ""
			}

			return &TupleElement{Name: name, TypeName: t}, true
		}
	}

	p.pos = save

	t, ok := p.parseType()
	if !ok {
		return nil, false
	}

	return &TupleElement{TypeName: t}, true
}
