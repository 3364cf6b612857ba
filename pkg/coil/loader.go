package coil

// This file resolves @file and @package directives: probe an ordered
// list of roots, confirm a candidate before opening anything, and read
// each external source fully before the directive's parse returns. A
// root ending in "/..." is expanded into every directory beneath it via
// doublestar glob matching.

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Loader is the minimal file collaborator the core depends on: open a
// named file for reading, plus the search behavior @package needs.
type Loader interface {
	// OpenFile resolves name against dir (the directory of the document
	// containing the @file directive; ignored if name is absolute) and
	// returns its contents as a LineSource plus the resolved path used
	// for error locations and as the new document's own directory.
	OpenFile(dir, name string) (LineSource, string, error)

	// OpenPackage resolves a "pkg.sub:relative/path" spec by searching
	// an ordered set of roots for a directory matching the dotted
	// package prefix that also contains the configured marker file.
	OpenPackage(spec string) (LineSource, string, error)
}

// FileSystemLoader is the default Loader, backed by the local filesystem.
type FileSystemLoader struct {
	Roots  []string
	Marker string
}

// NewFileSystemLoader returns a FileSystemLoader probing roots in order,
// using marker as the package-confirmation filename.
func NewFileSystemLoader(roots []string, marker string) *FileSystemLoader {
	return &FileSystemLoader{Roots: roots, Marker: marker}
}

func (l *FileSystemLoader) OpenFile(dir, name string) (LineSource, string, error) {
	full := name
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, name)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, "", err
	}
	return NewLineSourceFromString(string(data)), full, nil
}

func (l *FileSystemLoader) OpenPackage(spec string) (LineSource, string, error) {
	pkg, rel, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, "", lexicalError(Location{}, "malformed package spec %q, want pkg.sub:relative/path", spec)
	}
	pkgDir := strings.ReplaceAll(pkg, ".", string(filepath.Separator))

	for _, base := range l.expandedRoots() {
		candidate := filepath.Join(base, pkgDir)
		if _, err := os.Stat(filepath.Join(candidate, l.Marker)); err != nil {
			continue
		}
		full := filepath.Join(candidate, rel)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, "", err
		}
		return NewLineSourceFromString(string(data)), full, nil
	}
	return nil, "", ioError(Location{}, "package %q not found in any of %d search roots", pkg, len(l.Roots))
}

// expandedRoots walks l.Roots in order, expanding any root ending in
// "/..." into every directory it contains (depth first, alphabetical),
// without opening any file: doublestar only stats directory names here,
// same "confirm before open" discipline OpenPackage itself uses for the
// marker file.
func (l *FileSystemLoader) expandedRoots() []string {
	out := make([]string, 0, len(l.Roots))
	for _, root := range l.Roots {
		base, recursive := strings.CutSuffix(root, string(filepath.Separator)+"...")
		if !recursive {
			out = append(out, root)
			continue
		}
		out = append(out, base)
		matches, err := doublestar.Glob(os.DirFS(base), "**")
		if err != nil {
			continue
		}
		for _, m := range matches {
			out = append(out, filepath.Join(base, m))
		}
	}
	return out
}
