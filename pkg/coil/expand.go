package coil

// This file implements the expansion engine: it walks the prototype tree
// top down, resolving Links and ${path} interpolation on demand (so
// forward references within the same document work), memoizing each
// resolved value back in place, and tracking the set of absolute key
// paths currently being resolved to detect cycles.

import (
	"fmt"
	"strconv"
	"strings"
)

// Expand resolves every Link, ${...} interpolation, and @map directive
// in root, in place. It is the second half of Parse.
func Expand(root *Struct, opts *Options) error {
	return expandChildren(root, opts, map[string]bool{})
}

// expandChildren expands every key directly owned by s, applying @map
// first if present.
func expandChildren(s *Struct, opts *Options, block map[string]bool) error {
	if s.hasMap {
		return expandMap(s, opts, block)
	}
	for _, key := range s.Keys() {
		if _, err := resolveKey(s, key, opts, block); err != nil {
			return err
		}
	}
	return nil
}

// resolveKey expands the value currently stored at owner's key, memoizes
// the result in place, and returns it. It is the single entry point used
// both by top-down iteration and by Link/interpolation resolution, so
// every path that reaches a key stores its result in the same slot; a
// key reached again is expanded again from that already-expanded value.
func resolveKey(owner *Struct, key string, opts *Options, block map[string]bool) (Value, error) {
	abs := owner.AbsPath() + "." + key
	if block[abs] {
		return nil, circularError(owner, abs)
	}
	raw, ok := owner.getLocal(key)
	if !ok {
		return nil, keyMissingError(owner, key)
	}

	block[abs] = true
	defer delete(block, abs)

	expanded, err := expandValue(owner, key, raw, opts, block)
	if err != nil {
		return nil, err
	}
	owner.replace(key, expanded)
	return expanded, nil
}

// resolvePathString navigates path from owner and resolves whatever key
// it lands on, or returns the landed-on struct itself if path is empty
// after navigation (e.g. a bare "@root").
func resolvePathString(owner *Struct, path string, opts *Options, block map[string]bool) (Value, error) {
	parent, key, err := owner.nextParent(path, false)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return parent, nil
	}
	if !parent.Has(key) {
		return nil, keyMissingError(parent, key)
	}
	return resolveKey(parent, key, opts, block)
}

func expandValue(owner *Struct, key string, v Value, opts *Options, block map[string]bool) (Value, error) {
	switch t := v.(type) {
	case *Struct:
		if opts.nonRecursive() {
			return t, nil
		}
		if err := expandChildren(t, opts, block); err != nil {
			return nil, err
		}
		return t, nil
	case *List:
		return expandList(owner, t, opts, block)
	case *Link:
		if opts.ignoreType("links") {
			return t, nil
		}
		return expandLink(owner, key, t, opts, block)
	case string:
		if opts.ignoreType("strings") {
			return t, nil
		}
		return expandString(owner, t, opts, block)
	default:
		return v, nil
	}
}

func expandList(owner *Struct, l *List, opts *Options, block map[string]bool) (*List, error) {
	out := &List{Location: l.Location, Items: make([]Value, len(l.Items))}
	for i, item := range l.Items {
		switch t := item.(type) {
		case string:
			if opts.ignoreType("strings") {
				out.Items[i] = t
				continue
			}
			s2, err := expandString(owner, t, opts, block)
			if err != nil {
				return nil, err
			}
			out.Items[i] = s2
		case *List:
			nl, err := expandList(owner, t, opts, block)
			if err != nil {
				return nil, err
			}
			out.Items[i] = nl
		default:
			out.Items[i] = item
		}
	}
	return out, nil
}

// expandLink resolves link, rooted at the struct it was written in.
// A missing target is tolerated if a default or ignore_missing applies
// to the bare leaf key that failed to resolve.
func expandLink(owner *Struct, key string, link *Link, opts *Options, block map[string]bool) (Value, error) {
	container := link.Container
	if container == nil {
		container = owner
	}
	val, err := resolvePathString(container, link.Path, opts, block)
	if err != nil {
		if leafKey, ok := missingLeafKey(err); ok {
			if def, ok := opts.defaultFor(leafKey); ok {
				return def, nil
			}
			if opts.ignoreMissing(leafKey) {
				return link, nil
			}
		}
		return nil, err
	}
	switch t := val.(type) {
	case *Struct:
		return t.copyInto(owner, key), nil
	case *List:
		return t.DeepCopy(), nil
	default:
		return val, nil
	}
}

// expandString substitutes every ${path} occurrence in s with the
// stringified value found at path, looked up from owner.
func expandString(owner *Struct, s string, opts *Options, block map[string]bool) (string, error) {
	var failure error
	out := reInterp.ReplaceAllStringFunc(s, func(m string) string {
		if failure != nil {
			return m
		}
		path := m[2 : len(m)-1]
		val, err := resolvePathString(owner, path, opts, block)
		if err != nil {
			if leafKey, ok := missingLeafKey(err); ok {
				if def, ok := opts.defaultFor(leafKey); ok {
					return stringifyLeaf(def)
				}
				if opts.ignoreMissing(leafKey) {
					return m
				}
			}
			failure = err
			return m
		}
		return stringifyLeaf(val)
	})
	if failure != nil {
		return "", failure
	}
	return out, nil
}

// missingLeafKey extracts the bare key that failed to resolve from a
// KeyMissing error: "defaults"/"ignore_missing" are keyed by leaf name,
// not by the full dotted path that was looked up.
func missingLeafKey(err error) (string, bool) {
	e, ok := err.(*Error)
	if !ok || e.Kind != KeyMissing {
		return "", false
	}
	return e.Key, true
}

func stringifyLeaf(v Value) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// expandMap broadcasts template structs and zips parallel lists across
// the (brace-expanded) @map suffix list.
func expandMap(s *Struct, opts *Options, block map[string]bool) error {
	suffixes, err := expandMapSuffixes(s.mapList)
	if err != nil {
		return err
	}

	keys := append([]string(nil), s.order...)
	for _, key := range keys {
		if _, err := resolveKey(s, key, opts, block); err != nil {
			return err
		}
	}

	type templateEntry struct {
		key string
		val *Struct
	}
	type parallelEntry struct {
		key string
		val *List
	}
	var templates []templateEntry
	var parallels []parallelEntry

	for _, key := range keys {
		v, _ := s.getLocal(key)
		switch t := v.(type) {
		case *Struct:
			templates = append(templates, templateEntry{key, t})
		case *List:
			if len(t.Items) != len(suffixes) {
				return dataError(s, "@map parallel list %q has %d items, want %d", key, len(t.Items), len(suffixes))
			}
			parallels = append(parallels, parallelEntry{key, t})
		}
	}

	for _, tpl := range templates {
		if err := s.deleteLocal(tpl.key); err != nil {
			return err
		}
	}
	for _, par := range parallels {
		if err := s.deleteLocal(par.key); err != nil {
			return err
		}
	}

	s.hasMap = false
	s.mapList = nil

	var newKeys []string
	for _, tpl := range templates {
		for i, suffix := range suffixes {
			newKey := tpl.key + suffix
			child := tpl.val.copyInto(s, newKey)
			for _, par := range parallels {
				if _, already := child.values[par.key]; !already {
					child.order = append(child.order, par.key)
				}
				child.values[par.key] = par.val.Items[i]
			}
			if err := s.setPrimary(newKey, child); err != nil {
				return err
			}
			newKeys = append(newKeys, newKey)
		}
	}

	for _, key := range newKeys {
		if _, err := resolveKey(s, key, opts, block); err != nil {
			return err
		}
	}
	return nil
}

func expandMapSuffixes(raw []Value) ([]string, error) {
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			alts, err := braceExpand(s)
			if err != nil {
				return nil, err
			}
			out = append(out, alts...)
			continue
		}
		out = append(out, stringifyLeaf(v))
	}
	return out, nil
}

// braceExpand expands every {a,b} / {n..m} group in s, left to right,
// taking the cartesian product of multiple groups. A zero-padding width
// is preserved from the first range endpoint's literal text, so
// "{01..03}" yields "01", "02", "03". Nesting (a "{" appearing before the
// first group's closing "}") is rejected rather than silently
// misinterpreted.
func braceExpand(s string) ([]string, error) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return []string{s}, nil
	}
	end := strings.IndexByte(s[start+1:], '}')
	if end == -1 {
		return nil, dataErrorAt(Location{}, "", "unterminated brace expansion: %q", s)
	}
	end += start + 1
	inner := s[start+1 : end]
	if strings.ContainsAny(inner, "{}") {
		return nil, dataErrorAt(Location{}, "", "nested brace expansion is not supported: %q", s)
	}

	prefix := s[:start]
	suffix := s[end+1:]

	alts, err := braceAlternatives(inner)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, alt := range alts {
		rest, err := braceExpand(prefix + alt + suffix)
		if err != nil {
			return nil, err
		}
		out = append(out, rest...)
	}
	return out, nil
}

func braceAlternatives(inner string) ([]string, error) {
	if !strings.Contains(inner, ",") {
		if parts := strings.SplitN(inner, "..", 2); len(parts) == 2 {
			startStr := strings.TrimSpace(parts[0])
			endStr := strings.TrimSpace(parts[1])
			start, err1 := strconv.Atoi(startStr)
			end, err2 := strconv.Atoi(endStr)
			if err1 == nil && err2 == nil {
				width := len(startStr)
				if strings.HasPrefix(startStr, "-") {
					width--
				}
				var out []string
				if start <= end {
					for i := start; i <= end; i++ {
						out = append(out, fmt.Sprintf("%0*d", width, i))
					}
				} else {
					for i := start; i >= end; i-- {
						out = append(out, fmt.Sprintf("%0*d", width, i))
					}
				}
				return out, nil
			}
		}
	}
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}
