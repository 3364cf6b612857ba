package coil

import (
	"regexp"
	"strings"
)

// reInterp matches a single ${...} interpolation span within a string
// value.
var reInterp = regexp.MustCompile(`\$\{[^}]*\}`)

// Extends merges base's keys into s as secondary (inherited) entries.
// Existing keys in s (primary, secondary, or deleted) are never
// overwritten: the closer struct always wins. When relative is true (an
// @file/@package extension pulling in a struct from a different
// source), an absolute Link copied from base keeps its original
// Container and Path, so it still resolves in the tree it was written
// in, and every absolute ${...} interpolation is rewritten relative to
// base.
func (s *Struct) Extends(base *Struct, relative bool) error {
	if base == s {
		return dataError(s, "a struct cannot extend itself")
	}
	if base.hasMap && !s.hasMap {
		s.hasMap = true
		s.mapList = append([]Value(nil), base.mapList...)
	}

	for _, key := range base.Keys() {
		if s.Has(key) || s.deleted[key] {
			continue
		}
		raw, ok := base.getLocal(key)
		if !ok {
			continue
		}

		var value Value
		switch t := raw.(type) {
		case *Struct:
			nc := newChild(s, key, t.location)
			if err := nc.Extends(t, relative); err != nil {
				return err
			}
			value = nc
		case *Link:
			if relative && strings.HasPrefix(t.Path, "@root") {
				// An absolute link copied in from another file's tree
				// must keep resolving against that tree: its target may
				// lie entirely outside the subtree being copied, so
				// reparenting Container (and rewriting Path relative to
				// base) can point it at a key that doesn't exist here.
				value = &Link{Path: t.Path, Container: t.Container, Location: t.Location}
			} else {
				value = &Link{Path: t.Path, Container: s, Location: t.Location}
			}
		default:
			value = deepCopyValue(raw, s, key)
			if relative {
				value = relativizeValue(value, base)
			}
		}

		s.secondary[key] = value
		s.secondaryOrder = append(s.secondaryOrder, key)
	}
	return nil
}

// relativizeValue rewrites the absolute references embedded in a
// non-Struct, non-Link value copied from base's tree so it still resolves
// correctly once reparented elsewhere. Links are handled directly in
// Extends, since they carry a Container that strings and lists don't.
func relativizeValue(v Value, base *Struct) Value {
	switch t := v.(type) {
	case string:
		return relativizeString(t, base)
	case *List:
		return relativizeList(t, base)
	default:
		return v
	}
}

func relativizeList(l *List, base *Struct) *List {
	out := &List{Location: l.Location, Items: make([]Value, len(l.Items))}
	for i, v := range l.Items {
		switch t := v.(type) {
		case string:
			out.Items[i] = relativizeString(t, base)
		case *List:
			out.Items[i] = relativizeList(t, base)
		default:
			out.Items[i] = v
		}
	}
	return out
}

func relativizeString(s string, base *Struct) string {
	return reInterp.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[2 : len(m)-1]
		if !strings.HasPrefix(inner, "@root") {
			return m
		}
		return "${" + relativizePath(inner, base) + "}"
	})
}

// relativizePath rewrites an absolute ("@root...") path so that, when
// resolved relative to a struct sitting where base sits in its own tree,
// it reaches the same target: compute the relative form from the source
// struct to the absolute target in the source tree, then convert back to
// an absolute form in the destination — the conversion back to absolute
// happens lazily, at expansion time, against the struct that ends up
// holding the string. A plain ancestor-count transform is not enough
// here: it ignores any path prefix base shares with the target (e.g. a
// reference to a sibling inside the very subtree being copied), so this
// goes through
// the same common-prefix-aware RelativePath used for ordinary path
// resolution.
func relativizePath(path string, base *Struct) string {
	return RelativePath(base.AbsPath(), path)
}
