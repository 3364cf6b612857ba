package coil

import "strings"

// Struct is the core composite type. It doubles as both the unexpanded
// prototype and the final, fully expanded struct: rather than two
// distinct types, a single Struct always tracks primary/secondary/
// deleted bookkeeping; once parsing and @extends processing finish, that
// bookkeeping simply stops changing and is reused to preserve key
// ordering ("secondary keys before primary, except where a primary
// re-defined an inherited key") all the way into the expanded tree.
// Get/Set/Delete dispatch is identical before and after expansion; the
// only thing expansion changes is which Values live in the maps.
type Struct struct {
	container *Struct
	name      string
	location  Location

	values map[string]Value // primary entries, written literally in this struct's body
	order  []string          // iteration order of primary entries

	secondary      map[string]Value // entries contributed by @extends/@file/@package
	secondaryOrder []string

	deleted map[string]bool // keys removed by ~key in this struct's own body

	permissive bool // disable double-set/double-delete validation

	mapList []Value // raw (unexpanded) @map suffix list; nil if this struct has none
	hasMap  bool
}

// NewRoot creates an empty root Struct (container == nil, name == "@root").
func NewRoot(permissive bool) *Struct {
	return &Struct{
		values:     map[string]Value{},
		secondary:  map[string]Value{},
		deleted:    map[string]bool{},
		permissive: permissive,
	}
}

// newChild creates an empty Struct owned by container under name.
func newChild(container *Struct, name string, location Location) *Struct {
	return &Struct{
		container:  container,
		name:       name,
		location:   location,
		values:     map[string]Value{},
		secondary:  map[string]Value{},
		deleted:    map[string]bool{},
		permissive: container.permissive,
	}
}

// Container returns the parent Struct, or nil at the tree root.
func (s *Struct) Container() *Struct { return s.container }

// Name returns the key by which container addresses this Struct, or
// "@root" at the tree root.
func (s *Struct) Name() string {
	if s.container == nil {
		return "@root"
	}
	return s.name
}

// AbsPath returns this Struct's own absolute path.
func (s *Struct) AbsPath() string {
	if s.container == nil {
		return "@root"
	}
	return s.container.AbsPath() + "." + s.name
}

// Loc returns where this Struct's opening brace was parsed.
func (s *Struct) Loc() Location { return s.location }

// Path resolves p (absolute or relative) to an absolute path anchored at
// this Struct. An empty p returns this Struct's own absolute path.
func (s *Struct) Path(p string) (string, error) {
	if p == "" {
		return s.AbsPath(), nil
	}
	return AbsolutePath(s.AbsPath(), p)
}

// Keys returns the keys of this Struct in order: secondary (inherited)
// entries first in source order, then primary entries in the order
// written, skipping any primary key that already occupies a secondary
// slot (it keeps its inherited position instead).
// Deleted keys are omitted: they keep their slot in the underlying order
// (see Len) but are no longer visible to iteration or lookup.
func (s *Struct) Keys() []string {
	out := make([]string, 0, len(s.secondaryOrder)+len(s.order))
	for _, k := range s.secondaryOrder {
		if !s.deleted[k] {
			out = append(out, k)
		}
	}
	for _, k := range s.order {
		if !s.deleted[k] {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of slots this Struct has ever held, including
// ones since removed by ~key: a key keeps occupying its position (for
// double-delete/re-add bookkeeping) even once deleted, it is simply no
// longer reachable through Get/Keys.
func (s *Struct) Len() int {
	return len(s.order) + len(s.secondaryOrder)
}

// Has reports whether key is currently present (primary or secondary,
// and not deleted).
func (s *Struct) Has(key string) bool {
	_, ok := s.getLocal(key)
	return ok
}

func (s *Struct) getLocal(key string) (Value, bool) {
	if s.deleted[key] {
		return nil, false
	}
	if v, ok := s.values[key]; ok {
		return v, true
	}
	if v, ok := s.secondary[key]; ok {
		return v, true
	}
	return nil, false
}

func containsStr(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

func (s *Struct) validateDoubleSet(key string) error {
	if s.permissive {
		return nil
	}
	if s.deleted[key] {
		return dataError(s, "setting %q twice (deleted then set)", key)
	}
	if _, ok := s.values[key]; ok {
		return dataError(s, "setting %q twice", key)
	}
	return nil
}

// setPrimary sets a literal (non-inherited) key-value pair: if key
// already occupies a secondary slot, the value moves to primary but the
// key keeps its secondary position for iteration purposes.
func (s *Struct) setPrimary(key string, value Value) error {
	if !ValidateKey(key) {
		return keyValueError(s, key)
	}
	if err := s.validateDoubleSet(key); err != nil {
		return err
	}
	if st, ok := value.(*Struct); ok {
		st.container = s
		st.name = key
	}
	s.values[key] = value
	if _, ok := s.secondary[key]; ok {
		delete(s.secondary, key)
	} else if !containsStr(s.order, key) {
		s.order = append(s.order, key)
	}
	return nil
}

// replace overwrites an already-present key's value in place without
// running double-set validation or touching ordering. Used by the
// expansion engine to substitute a Link/string for its resolved value.
func (s *Struct) replace(key string, value Value) {
	if _, ok := s.values[key]; ok {
		s.values[key] = value
		return
	}
	s.secondary[key] = value
}

// deleteLocal marks key as deleted: it keeps its slot in values/secondary
// and order/secondaryOrder (Len still counts it) but getLocal, Has, Keys
// and Get no longer see it, and it can never be set again in this
// Struct's own body.
func (s *Struct) deleteLocal(key string) error {
	if s.deleted[key] {
		if s.permissive {
			return nil
		}
		return dataError(s, "deleting %q twice", key)
	}
	if _, ok := s.getLocal(key); !ok {
		return keyMissingError(s, key)
	}
	s.deleted[key] = true
	return nil
}

// nextParent walks the first segment(s) of path from s, returning the
// Struct that directly owns the remaining (possibly empty) key and that
// trailing key.
func (s *Struct) nextParent(path string, addParents bool) (*Struct, string, error) {
	switch {
	case strings.HasPrefix(path, "@root"):
		if s.container != nil {
			// Ascend one level at a time; the real stripping happens
			// once we reach the actual root struct.
			return s.container.nextParent(path, addParents)
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(path, "@root"), ".")
		if rest == "" {
			return s, "", nil
		}
		return s.nextParent(rest, addParents)

	case !strings.Contains(path, "."):
		return s, path, nil

	case strings.HasPrefix(path, ".."):
		if s.container == nil {
			return nil, "", dataError(s, "reference past root")
		}
		return s.container.nextParent(path[1:], addParents)

	case strings.HasPrefix(path, "."):
		return s.nextParent(path[1:], addParents)

	default:
		if strings.Contains(path, "..") {
			return nil, "", keyValueError(s, path)
		}
		parts := strings.SplitN(path, ".", 2)
		key := parts[0]
		rest := ""
		if len(parts) == 2 {
			rest = parts[1]
		}

		v, ok := s.getLocal(key)
		var child *Struct
		if !ok {
			if addParents {
				child = newChild(s, key, Location{})
				if err := s.setPrimary(key, child); err != nil {
					return nil, "", err
				}
			} else {
				return nil, "", keyMissingError(s, key)
			}
		} else {
			var isStruct bool
			child, isStruct = v.(*Struct)
			if !isStruct {
				return nil, "", valueTypeError(s, key, typeName(v), "struct")
			}
		}
		return child.nextParent(rest, addParents)
	}
}

// Get resolves path from this Struct and returns the Value found there,
// or a KeyMissing/KeyValue/ValueType error (Data for a reference past the
// root).
func (s *Struct) Get(path string) (Value, error) {
	parent, key, err := s.nextParent(path, false)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return parent, nil
	}
	v, ok := parent.getLocal(key)
	if !ok {
		return nil, keyMissingError(parent, key)
	}
	return v, nil
}

// GetDefault resolves path, returning def if it is missing.
func (s *Struct) GetDefault(path string, def Value) Value {
	v, err := s.Get(path)
	if err != nil {
		return def
	}
	return v
}

// Set assigns value at path, creating intermediate Structs as dotted
// path segments require.
func (s *Struct) Set(path string, value Value) error {
	parent, key, err := s.nextParent(path, true)
	if err != nil {
		return err
	}
	if key == "" || !ValidateKey(key) {
		return keyValueError(s, key)
	}
	return parent.setPrimary(key, value)
}

// Delete removes the value at path. The key must already exist.
func (s *Struct) Delete(path string) error {
	parent, key, err := s.nextParent(path, false)
	if err != nil {
		return err
	}
	if key == "" {
		return keyValueError(s, path)
	}
	return parent.deleteLocal(key)
}

// copyInto returns a deep, self-contained copy of s reparented under
// container with the given name.
func (s *Struct) copyInto(container *Struct, name string) *Struct {
	loc := s.location
	var out *Struct
	if container == nil {
		out = NewRoot(s.permissive)
		out.location = loc
	} else {
		out = newChild(container, name, loc)
	}

	for _, key := range s.secondaryOrder {
		if v, ok := s.secondary[key]; ok {
			out.secondary[key] = deepCopyValue(v, out, key)
		}
	}
	out.secondaryOrder = append([]string(nil), s.secondaryOrder...)

	// A primary key that re-defined an inherited one is in values but not
	// in order (it keeps its secondary slot), so copy every value.
	for key, v := range s.values {
		out.values[key] = deepCopyValue(v, out, key)
	}
	out.order = append([]string(nil), s.order...)

	if s.hasMap {
		out.hasMap = true
		out.mapList = append([]Value(nil), s.mapList...)
	}

	for key := range s.deleted {
		out.deleted[key] = true
	}
	return out
}

// Copy returns a detached deep copy of s, with no container.
func (s *Struct) Copy() *Struct {
	return s.copyInto(nil, "")
}
