package coil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystemLoaderOpenFileRelativeToDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "inc.ext"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewFileSystemLoader(nil, "__init__")
	src, path, err := l.OpenFile(dir, "inc.ext")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "inc.ext") {
		t.Errorf("path = %q", path)
	}
	line, err := src.NextLine()
	if err != nil || line != "x: 1" {
		t.Errorf("got %q, %v", line, err)
	}
}

func TestFileSystemLoaderOpenPackageSearchesRoots(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()

	pkgDir := filepath.Join(root2, "pkg", "sub")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "__init__"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "file.ext"), []byte("y: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewFileSystemLoader([]string{root1, root2}, "__init__")
	src, _, err := l.OpenPackage("pkg.sub:file.ext")
	if err != nil {
		t.Fatal(err)
	}
	line, err := src.NextLine()
	if err != nil || line != "y: 2" {
		t.Errorf("got %q, %v", line, err)
	}
}

func TestFileSystemLoaderOpenPackageMissingIsIOError(t *testing.T) {
	l := NewFileSystemLoader([]string{t.TempDir()}, "__init__")
	_, _, err := l.OpenPackage("nope.sub:file.ext")
	ce, ok := err.(*Error)
	if !ok || ce.Kind != IO {
		t.Fatalf("got %v, want an IO error", err)
	}
}

func TestFileSystemLoaderRecursiveRootFindsNestedPackage(t *testing.T) {
	base := t.TempDir()
	pkgDir := filepath.Join(base, "deep", "nested", "pkg")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "__init__"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "file.ext"), []byte("z: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewFileSystemLoader([]string{base + string(filepath.Separator) + "..."}, "__init__")
	src, _, err := l.OpenPackage("pkg:file.ext")
	if err != nil {
		t.Fatal(err)
	}
	line, err := src.NextLine()
	if err != nil || line != "z: 3" {
		t.Errorf("got %q, %v", line, err)
	}
}
