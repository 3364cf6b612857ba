package coil

import "strconv"

// ToGo renders an evaluated Value tree into plain Go values (maps,
// slices, and scalars) suitable for encoders that know nothing about
// coil, such as encoding/json-shaped marshalers. A *Link surviving into
// ToGo means expansion was skipped or left it unresolved (IgnoreTypes,
// IgnoreMissing); it renders as "=" followed by its path rather than
// panicking.
func ToGo(v Value) interface{} {
	switch t := v.(type) {
	case *Struct:
		out := make(map[string]interface{}, t.Len())
		for _, key := range t.Keys() {
			val, ok := t.getLocal(key)
			if !ok {
				continue
			}
			out[key] = ToGo(val)
		}
		return out
	case *List:
		out := make([]interface{}, len(t.Items))
		for i, item := range t.Items {
			out[i] = ToGo(item)
		}
		return out
	case *Link:
		return "=" + t.Path
	default:
		return t
	}
}

// Flatten renders s's fully evaluated leaves into a flat map keyed by
// dotted path, the shape flat serialization formats like properties
// files expect. List items are indexed as "key.N".
func Flatten(s *Struct) map[string]string {
	out := map[string]string{}
	flattenLeavesInto(out, s, "")
	return out
}

func flattenLeavesInto(out map[string]string, s *Struct, prefix string) {
	for _, key := range s.Keys() {
		val, ok := s.getLocal(key)
		if !ok {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		flattenValueInto(out, val, path)
	}
}

func flattenValueInto(out map[string]string, v Value, path string) {
	switch t := v.(type) {
	case *Struct:
		flattenLeavesInto(out, t, path)
	case *List:
		for i, item := range t.Items {
			flattenValueInto(out, item, path+"."+strconv.Itoa(i))
		}
	default:
		out[path] = stringifyLeaf(v)
	}
}
