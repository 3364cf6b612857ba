package coil

// This file implements the serializer, the inverse of the parser: it
// must be possible to re-parse serialized output and get back an equal
// tree. Nested struct bodies are indented with the internal/indent
// package rather than hand-tracked indentation levels.

import (
	"strconv"
	"strings"

	"github.com/coilconf/coil/internal/indent"
)

const indentUnit = "    "

// SerializeNested renders s as nested brace syntax: one key-value pair
// per line, nested structs indented four spaces under their opening
// brace.
func SerializeNested(s *Struct) (string, error) {
	return serializeBody(s)
}

// SerializeFlat renders s with dotted key paths at the top level; nested
// structs are not bracketed, their keys are flattened into their
// parent's dotted path instead.
func SerializeFlat(s *Struct) (string, error) {
	var b strings.Builder
	if err := flattenInto(&b, s, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

func flattenInto(b *strings.Builder, s *Struct, prefix string) error {
	for _, key := range s.Keys() {
		v, _ := s.getLocal(key)
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if child, ok := v.(*Struct); ok {
			if err := flattenInto(b, child, full); err != nil {
				return err
			}
			continue
		}
		vs, err := serializeValue(v)
		if err != nil {
			return err
		}
		b.WriteString(full)
		b.WriteString(": ")
		b.WriteString(vs)
		b.WriteString("\n")
	}
	return nil
}

func serializeBody(s *Struct) (string, error) {
	var b strings.Builder
	for _, key := range s.Keys() {
		v, _ := s.getLocal(key)
		vs, err := serializeValue(v)
		if err != nil {
			return "", err
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vs)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func serializeValue(v Value) (string, error) {
	switch t := v.(type) {
	case *Struct:
		body, err := serializeBody(t)
		if err != nil {
			return "", err
		}
		if body == "" {
			return "{}", nil
		}
		return "{\n" + indent.String(indentUnit, body) + "}", nil
	case *List:
		return serializeList(t)
	case *Link:
		return "=" + t.Path, nil
	default:
		return serializeLeaf(v)
	}
}

func serializeList(l *List) (string, error) {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		s, err := serializeValue(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, " ") + "]", nil
}

func serializeLeaf(v Value) (string, error) {
	switch t := v.(type) {
	case nil:
		return "None", nil
	case bool:
		if t {
			return "True", nil
		}
		return "False", nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		// Always keep a fractional part so the value re-parses as a FLOAT.
		f := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.Contains(f, ".") {
			f += ".0"
		}
		return f, nil
	case string:
		return quoteString(t), nil
	default:
		return "", dataErrorAt(Location{}, "", "cannot serialize value of type %T", v)
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
