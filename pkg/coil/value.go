package coil

import "fmt"

// Value is exactly one of: nil, bool, int64, float64, string (a leaf),
// *List, *Link, or *Struct. Leaves are represented as their native Go
// types rather than wrapped, since Go's interface{} already gives them a
// closed, comparable identity; only the composite kinds (List, Link,
// Struct) need their own type.
type Value interface{}

// List is an ordered sequence of leaves and nested Lists. Lists may never
// contain a *Struct (rejected at parse time).
type List struct {
	Items    []Value
	Location Location
}

// NewList wraps items as a List.
func NewList(items []Value) *List {
	return &List{Items: items}
}

// DeepCopy returns a recursive copy of l; nested Lists are copied, leaves
// are shared since they are immutable.
func (l *List) DeepCopy() *List {
	if l == nil {
		return nil
	}
	out := &List{Items: make([]Value, len(l.Items)), Location: l.Location}
	for i, v := range l.Items {
		if nl, ok := v.(*List); ok {
			out.Items[i] = nl.DeepCopy()
		} else {
			out.Items[i] = v
		}
	}
	return out
}

func (l *List) String() string {
	return fmt.Sprintf("%v", l.Items)
}

// Link is an unresolved symbolic reference captured at parse time. It
// exists only between parsing and the end of expansion.
type Link struct {
	Path      string
	Container *Struct // the struct in which the link was written
	Location  Location
}

func (l *Link) String() string {
	return fmt.Sprintf("Link(%s)", l.Path)
}

// typeName returns a short, human readable name for v, used in ValueType
// errors.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case *List:
		return "list"
	case *Link:
		return "link"
	case *Struct:
		return "struct"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// deepCopyValue recursively copies composite values; leaves are returned
// unchanged since they are immutable.
func deepCopyValue(v Value, container *Struct, name string) Value {
	switch t := v.(type) {
	case *Struct:
		return t.copyInto(container, name)
	case *List:
		return t.DeepCopy()
	case *Link:
		return &Link{Path: t.Path, Container: container, Location: t.Location}
	default:
		return v
	}
}
