package coil

// This file implements the recursive-descent parser: token stream in,
// unexpanded Struct prototype tree out. Nothing is expanded here.

import (
	"os"
	"path/filepath"
	"strings"
)

type parser struct {
	lex        *lexer
	loader     Loader
	dir        string
	permissive bool
	encoding   string
}

// Parse tokenizes and parses src into a fully expanded tree in one call.
func Parse(src LineSource, path string, opts *Options) (*Struct, error) {
	root, err := ParsePrototype(src, path, opts)
	if err != nil {
		return nil, err
	}
	if err := Expand(root, opts); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseFile opens path from the filesystem, uses its directory as the
// base for relative @file lookups, and parses+expands it in one call.
func ParseFile(path string, opts *Options) (*Struct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError(Location{Path: path}, "opening %s: %v", path, err)
	}
	p := &parser{
		lex:        newLexerWithEncoding(NewLineSourceFromString(string(data)), path, opts.encoding()),
		loader:     opts.loader(),
		dir:        filepath.Dir(path),
		permissive: opts.permissive(),
		encoding:   opts.encoding(),
	}
	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	if err := Expand(root, opts); err != nil {
		return nil, err
	}
	return root, nil
}

// ParsePrototype parses src into its unexpanded prototype tree without
// running the expansion engine; used by Parse and exposed for callers
// that want to inspect the tree before expansion.
func ParsePrototype(src LineSource, path string, opts *Options) (*Struct, error) {
	p := &parser{
		lex:        newLexerWithEncoding(src, path, opts.encoding()),
		loader:     opts.loader(),
		dir:        "",
		permissive: opts.permissive(),
		encoding:   opts.encoding(),
	}
	return p.parseRoot()
}

func (p *parser) parseRoot() (*Struct, error) {
	root := NewRoot(p.permissive)
	if err := p.parseAttributes(root, tEOF); err != nil {
		return nil, err
	}
	return root, nil
}

// parseAttributes reads attributes into s until a token of type closing
// is consumed.
func (p *parser) parseAttributes(s *Struct, closing TokenType) error {
	for {
		t, err := p.lex.next()
		if err != nil {
			return err
		}
		if t.typ == closing {
			return nil
		}
		if t.typ == tEOF {
			return syntaxError(t.loc, "unexpected end of input")
		}
		if err := p.parseAttribute(s, t); err != nil {
			return err
		}
	}
}

func (p *parser) parseAttribute(s *Struct, t *token) error {
	switch t.typ {
	case tTilde:
		key, err := p.expectType(tPath)
		if err != nil {
			return err
		}
		return s.Delete(key.text)
	case tPath:
		switch t.text {
		case "@extends":
			return p.parseExtends(s)
		case "@file":
			return p.parseFile(s)
		case "@package":
			return p.parsePackage(s)
		case "@map":
			return p.parseMapDirective(s)
		default:
			return p.parseKeyValue(s, t)
		}
	default:
		return syntaxError(t.loc, "unexpected token %s", t)
	}
}

// parseKeyValue resolves the (possibly dotted) key's container before
// parsing its value, so struct literals nested under an auto-created
// intermediate key are parented correctly.
func (p *parser) parseKeyValue(s *Struct, keyTok *token) error {
	if _, err := p.expectType(tColon); err != nil {
		return err
	}
	parent, tail, err := s.nextParent(keyTok.text, true)
	if err != nil {
		return err
	}
	if tail == "" || !ValidateKey(tail) {
		return keyValueError(s, keyTok.text)
	}
	value, err := p.parseValue(parent, tail)
	if err != nil {
		return err
	}
	return parent.setPrimary(tail, value)
}

func (p *parser) parseValue(container *Struct, name string) (Value, error) {
	t, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch t.typ {
	case tLBrace:
		child := newChild(container, name, t.loc)
		if err := p.parseAttributes(child, tRBrace); err != nil {
			return nil, err
		}
		return child, nil
	case tLBracket:
		return p.parseList(t.loc)
	case tEquals:
		// Accepted no-op before a path value, retained for backward
		// compatibility.
		pt, err := p.expectType(tPath)
		if err != nil {
			return nil, err
		}
		return &Link{Path: pt.text, Container: container, Location: pt.loc}, nil
	case tPath:
		return &Link{Path: t.text, Container: container, Location: t.loc}, nil
	case tInteger:
		return t.value.(int64), nil
	case tFloat:
		return t.value.(float64), nil
	case tString:
		return t.value.(string), nil
	case tBoolean:
		return t.value.(bool), nil
	default:
		return nil, syntaxError(t.loc, "unexpected token %s in value", t)
	}
}

func (p *parser) parseList(loc Location) (*List, error) {
	items := []Value{}
	for {
		t, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch t.typ {
		case tRBracket:
			return &List{Items: items, Location: loc}, nil
		case tLBracket:
			nested, err := p.parseList(t.loc)
			if err != nil {
				return nil, err
			}
			items = append(items, nested)
		case tInteger:
			items = append(items, t.value.(int64))
		case tFloat:
			items = append(items, t.value.(float64))
		case tString:
			items = append(items, t.value.(string))
		case tBoolean:
			items = append(items, t.value.(bool))
		case tLBrace:
			return nil, dataErrorAt(t.loc, "", "structs are not allowed inside lists")
		default:
			return nil, syntaxError(t.loc, "unexpected token %s in list", t)
		}
	}
}

func (p *parser) expectType(typ TokenType) (*token, error) {
	t, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if t.typ != typ {
		return nil, syntaxError(t.loc, "unexpected token %s, expected %s", t.typ, typ)
	}
	return t, nil
}

// parseExtends handles "@extends: (=)? path", validating that the target
// is absolute or ascending and is neither self, an ancestor, nor a
// descendant of s (the stricter "forbid any descendant" rule -- see
// DESIGN.md).
func (p *parser) parseExtends(s *Struct) error {
	if _, err := p.expectType(tColon); err != nil {
		return err
	}
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	if t.typ == tEquals {
		t, err = p.lex.next()
		if err != nil {
			return err
		}
	}
	if t.typ != tPath {
		return syntaxError(t.loc, "expected a path after @extends")
	}
	if !strings.HasPrefix(t.text, "@root") && !strings.HasPrefix(t.text, ".") {
		return keyValueError(s, t.text)
	}

	target, err := s.Get(t.text)
	if err != nil {
		return err
	}
	base, ok := target.(*Struct)
	if !ok {
		return valueTypeError(s, t.text, typeName(target), "struct")
	}
	if base == s || isAncestor(base, s) || isAncestor(s, base) {
		return dataError(s, "@extends target %q is self, an ancestor, or a descendant", t.text)
	}
	return s.Extends(base, false)
}

// parseFile handles "@file: STRING | [STRING STRING]".
func (p *parser) parseFile(s *Struct) error {
	if _, err := p.expectType(tColon); err != nil {
		return err
	}
	t, err := p.lex.next()
	if err != nil {
		return err
	}

	var name, subKey string
	loc := t.loc
	switch t.typ {
	case tString:
		name = t.value.(string)
	case tLBracket:
		first, err := p.expectType(tString)
		if err != nil {
			return err
		}
		second, err := p.expectType(tString)
		if err != nil {
			return err
		}
		if _, err := p.expectType(tRBracket); err != nil {
			return err
		}
		name = first.value.(string)
		subKey = second.value.(string)
	default:
		return syntaxError(t.loc, "expected a string or [string string] after @file")
	}

	src, path, err := p.loader.OpenFile(p.dir, name)
	if err != nil {
		return ioError(loc, "opening %s: %v", name, err)
	}
	extRoot, err := p.parseExternal(src, path)
	if err != nil {
		return err
	}

	base := extRoot
	if subKey != "" {
		v, err := extRoot.Get(subKey)
		if err != nil {
			return err
		}
		var ok bool
		base, ok = v.(*Struct)
		if !ok {
			return valueTypeError(extRoot, subKey, typeName(v), "struct")
		}
	}
	return s.Extends(base, true)
}

// parsePackage handles "@package: STRING".
func (p *parser) parsePackage(s *Struct) error {
	if _, err := p.expectType(tColon); err != nil {
		return err
	}
	t, err := p.expectType(tString)
	if err != nil {
		return err
	}
	src, path, err := p.loader.OpenPackage(t.value.(string))
	if err != nil {
		return ioError(t.loc, "opening package %s: %v", t.value, err)
	}
	extRoot, err := p.parseExternal(src, path)
	if err != nil {
		return err
	}
	return s.Extends(extRoot, true)
}

// parseMapDirective handles "@map: list", capturing the raw (unexpanded)
// suffix list; brace expansion happens later, during expansion proper.
func (p *parser) parseMapDirective(s *Struct) error {
	if _, err := p.expectType(tColon); err != nil {
		return err
	}
	t, err := p.expectType(tLBracket)
	if err != nil {
		return err
	}
	list, err := p.parseList(t.loc)
	if err != nil {
		return err
	}
	s.hasMap = true
	s.mapList = append([]Value(nil), list.Items...)
	return nil
}

func (p *parser) parseExternal(src LineSource, path string) (*Struct, error) {
	sub := &parser{
		lex:        newLexerWithEncoding(src, path, p.encoding),
		loader:     p.loader,
		dir:        filepath.Dir(path),
		permissive: p.permissive,
		encoding:   p.encoding,
	}
	return sub.parseRoot()
}

// isAncestor reports whether a is a (possibly indirect) container of b.
func isAncestor(a, b *Struct) bool {
	for c := b.container; c != nil; c = c.container {
		if c == a {
			return true
		}
	}
	return false
}
