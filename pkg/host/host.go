// Package host is a thin collaborator sitting outside the core
// expansion engine: it renders an evaluated coil struct into
// host-defined Go values by reading a distinguished "__factory__"
// attribute and dispatching to a registered constructor, and it offers
// cast-based leaf coercion for callers that just want a typed scalar
// out of a tree. The core package never imports this one.
package host

import (
	"fmt"

	"github.com/coilconf/coil/pkg/coil"
	"github.com/spf13/cast"
)

// FactoryAttr is the struct attribute whose value names the constructor
// to dispatch to.
const FactoryAttr = "__factory__"

// Factory builds a host object from an evaluated struct.
type Factory func(s *coil.Struct) (interface{}, error)

// Registry maps factory names to constructors.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Build reads s's __factory__ attribute and dispatches to the matching
// registered constructor. If s has no __factory__ attribute, Build
// returns s unchanged as an interface{} so callers can fall back to
// reading fields directly.
func (r *Registry) Build(s *coil.Struct) (interface{}, error) {
	v, err := s.Get(FactoryAttr)
	if err != nil {
		if coil.IsKeyMissing(err) {
			return s, nil
		}
		return nil, err
	}
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("host: %s attribute must be a string, got %T", FactoryAttr, v)
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("host: no factory registered for %q", name)
	}
	return f(s)
}

// BuildAll renders every struct-valued key of s through r.Build, keyed
// by name, skipping non-struct values.
func (r *Registry) BuildAll(s *coil.Struct) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for _, key := range s.Keys() {
		v, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		child, ok := v.(*coil.Struct)
		if !ok {
			continue
		}
		built, err := r.Build(child)
		if err != nil {
			return nil, fmt.Errorf("host: building %q: %w", key, err)
		}
		out[key] = built
	}
	return out, nil
}

// String reads path as a string, coercing leaves via spf13/cast.
func String(s *coil.Struct, path string) (string, error) {
	v, err := s.Get(path)
	if err != nil {
		return "", err
	}
	return cast.ToStringE(v)
}

// StringDefault is String but returns def instead of an error when path
// is missing.
func StringDefault(s *coil.Struct, path, def string) string {
	v, err := String(s, path)
	if err != nil {
		return def
	}
	return v
}

// Int reads path as an int, coercing leaves via spf13/cast.
func Int(s *coil.Struct, path string) (int, error) {
	v, err := s.Get(path)
	if err != nil {
		return 0, err
	}
	return cast.ToIntE(v)
}

// Bool reads path as a bool, coercing leaves via spf13/cast.
func Bool(s *coil.Struct, path string) (bool, error) {
	v, err := s.Get(path)
	if err != nil {
		return false, err
	}
	return cast.ToBoolE(v)
}

// Float reads path as a float64, coercing leaves via spf13/cast.
func Float(s *coil.Struct, path string) (float64, error) {
	v, err := s.Get(path)
	if err != nil {
		return 0, err
	}
	return cast.ToFloat64E(v)
}

// StringSlice reads path as a list of strings, coercing each element via
// spf13/cast.
func StringSlice(s *coil.Struct, path string) ([]string, error) {
	v, err := s.Get(path)
	if err != nil {
		return nil, err
	}
	list, ok := v.(*coil.List)
	if !ok {
		return nil, fmt.Errorf("host: %s is a %T, not a list", path, v)
	}
	out := make([]string, len(list.Items))
	for i, item := range list.Items {
		str, err := cast.ToStringE(item)
		if err != nil {
			return nil, fmt.Errorf("host: %s[%d]: %w", path, i, err)
		}
		out[i] = str
	}
	return out, nil
}
