package coil

import "testing"

func TestSerializeNestedRoundTrips(t *testing.T) {
	doc := `a: 1
b: 2.5
c: "hi\nthere"
d: True
e: [1 2 "three"]
f: { g: 1 h: "nested" }`
	root := mustParse(t, doc, nil)

	out, err := SerializeNested(root)
	if err != nil {
		t.Fatal(err)
	}

	reparsed := mustParse(t, out, nil)
	if !root.Equal(reparsed) {
		t.Fatalf("round trip mismatch:\noriginal serialization:\n%s\nreserialized:\n%s", out, mustSerialize(t, reparsed))
	}
}

func TestSerializeFlatRoundTrips(t *testing.T) {
	doc := `a: { b: { c: 1 } d: 2 }`
	root := mustParse(t, doc, nil)

	out, err := SerializeFlat(root)
	if err != nil {
		t.Fatal(err)
	}
	reparsed := mustParse(t, out, nil)
	if !root.Equal(reparsed) {
		t.Fatalf("flat round trip mismatch:\n%s", out)
	}
}

func mustSerialize(t *testing.T, s *Struct) string {
	t.Helper()
	out, err := SerializeNested(s)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
