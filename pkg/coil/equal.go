package coil

// Equal reports whether s and other hold the same keys and values,
// recursively. Struct key order never participates; list element order
// always does.
func (s *Struct) Equal(other *Struct) bool {
	return structEqual(s, other)
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && structEqual(av, bv)
	case *List:
		bv, ok := b.(*List)
		return ok && listEqual(av, bv)
	case *Link:
		bv, ok := b.(*Link)
		return ok && av.Path == bv.Path
	default:
		return a == b
	}
}

func structEqual(a, b *Struct) bool {
	if a == nil || b == nil {
		return a == b
	}
	aKeys := a.Keys()
	bKeys := b.Keys()
	if len(aKeys) != len(bKeys) {
		return false
	}
	for _, key := range aKeys {
		av, ok := a.getLocal(key)
		if !ok {
			return false
		}
		bv, ok := b.getLocal(key)
		if !ok {
			return false
		}
		if !valuesEqual(av, bv) {
			return false
		}
	}
	return true
}

func listEqual(a, b *List) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !valuesEqual(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
