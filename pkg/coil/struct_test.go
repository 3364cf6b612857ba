package coil

import "testing"

func TestStructSetGetDotted(t *testing.T) {
	root := NewRoot(false)
	if err := root.Set("a.b.c", int64(1)); err != nil {
		t.Fatal(err)
	}
	v, err := root.Get("a.b.c")
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != 1 {
		t.Fatalf("got %v, want 1", v)
	}
	a, err := root.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a.(*Struct); !ok {
		t.Fatalf("a is not a *Struct: %T", a)
	}
}

func TestStructGetMissingIsKeyMissing(t *testing.T) {
	root := NewRoot(false)
	_, err := root.Get("nope")
	if !IsKeyMissing(err) {
		t.Fatalf("got %v, want KeyMissing", err)
	}
}

func TestStructDeleteThenReSetIsDataError(t *testing.T) {
	root := NewRoot(false)
	root.setPrimary("x", int64(1))
	if err := root.Delete("x"); err != nil {
		t.Fatal(err)
	}
	if _, err := root.Get("x"); !IsKeyMissing(err) {
		t.Fatalf("got %v, want KeyMissing after delete", err)
	}
	err := root.setPrimary("x", int64(2))
	ce, ok := err.(*Error)
	if !ok || ce.Kind != Data {
		t.Fatalf("got %v, want a Data error re-setting a deleted key", err)
	}
}

func TestStructDoubleDeleteIsDataError(t *testing.T) {
	root := NewRoot(false)
	root.setPrimary("x", int64(1))
	if err := root.Delete("x"); err != nil {
		t.Fatal(err)
	}
	err := root.Delete("x")
	ce, ok := err.(*Error)
	if !ok || ce.Kind != Data {
		t.Fatalf("got %v, want a Data error on double delete", err)
	}
}

func TestStructLenCountsDeletedSlots(t *testing.T) {
	root := NewRoot(false)
	root.setPrimary("a", int64(1))
	root.setPrimary("b", int64(2))
	if err := root.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if root.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (a keeps its slot though deleted)", root.Len())
	}
	keys := root.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("Keys() = %v, want [b]", keys)
	}
}

func TestAbsolutePath(t *testing.T) {
	cases := []struct{ ref, p, want string }{
		{"@root.a.b", ".x", "@root.a.b.x"},
		{"@root.a.b", "..x", "@root.a.x"},
		{"@root.a.b", "...x", "@root.x"},
		{"@root.a.b", "@root.z", "@root.z"},
	}
	for _, c := range cases {
		got, err := AbsolutePath(c.ref, c.p)
		if err != nil {
			t.Fatalf("AbsolutePath(%q, %q): %v", c.ref, c.p, err)
		}
		if got != c.want {
			t.Errorf("AbsolutePath(%q, %q) = %q, want %q", c.ref, c.p, got, c.want)
		}
	}
}

func TestRelativeAbsoluteDuality(t *testing.T) {
	ref := "@root.a.b"
	targets := []string{"@root.a.b.x", "@root.a.x", "@root.x", "@root.a.b"}
	for _, target := range targets {
		rel := RelativePath(ref, target)
		back, err := AbsolutePath(ref, rel)
		if err != nil {
			t.Fatalf("AbsolutePath(%q, %q): %v", ref, rel, err)
		}
		if back != target {
			t.Errorf("round trip for %q via %q got %q", target, rel, back)
		}
	}
}

func TestStructCopyIsDeepAndDetached(t *testing.T) {
	root := NewRoot(false)
	root.Set("a.b", int64(1))
	cp := root.Copy()
	if err := cp.Set("a.b", int64(2)); err != nil {
		t.Fatal(err)
	}
	v, _ := root.Get("a.b")
	if v.(int64) != 1 {
		t.Fatalf("mutating the copy changed the original: %v", v)
	}
}

func TestStructCopyPreservesDeletedKeys(t *testing.T) {
	doc := `base: { a: 1 b: 2 ~b } x: base`
	root := mustParse(t, doc, nil)
	x, err := root.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := x.(*Struct).Get("b"); err == nil {
		t.Fatal("x.b should stay deleted through the Link-resolution copy of base")
	}
}
