package coil

// Options controls expansion behavior. The zero value is the strict
// default: no defaults, nothing permissive, missing links are errors.
type Options struct {
	// Defaults supplies fallback values for links/interpolations that
	// would otherwise raise KeyMissing, keyed by the bare leaf key that
	// failed to resolve (not the full dotted path).
	Defaults map[string]Value

	// IgnoreMissing lists leaf keys for which a KeyMissing error during
	// link/interpolation resolution is tolerated; the link is left
	// unexpanded in place. IgnoreAllMissing, if set, tolerates every
	// missing reference regardless of key.
	IgnoreMissing    map[string]bool
	IgnoreAllMissing bool

	// IgnoreTypes lists value kinds, "links" and/or "strings", that
	// expansion should leave untouched: a Link is left as a Link rather
	// than resolved, and a string's ${...} interpolations are left
	// literal rather than substituted.
	IgnoreTypes []string

	// NonRecursive stops expansion from descending into child structs:
	// only each struct's own directly owned keys are resolved, nested
	// structs are left exactly as the parser produced them (still
	// holding unresolved Links and ${...} strings). The zero value
	// (false) is the normal fully-recursive behavior, matching the
	// upstream evaluator's recursive=True default; naming it as a
	// negative keeps the zero value safe rather than requiring every
	// caller to opt back into recursion.
	NonRecursive bool

	// Permissive disables struct double-set/double-delete validation,
	// mirrored onto every Struct created under these Options.
	Permissive bool

	// Loader resolves @file/@package targets. If nil, a FileSystemLoader
	// over SearchRoots (default: the current directory) with
	// PackageMarker (default "__init__") is used.
	Loader Loader

	// SearchRoots lists the filesystem roots probed by @package.
	SearchRoots []string

	// PackageMarker is the filename whose presence confirms a directory
	// is a package root, e.g. "__init__". Defaults to "__init__".
	PackageMarker string

	// Encoding names the declared character encoding of the parsed
	// document(s), e.g. "utf-8". When set, every line read by the
	// tokenizer is validated against it and a Unicode error is raised at
	// the offending line/column on failure. Empty disables validation.
	Encoding string
}

func (o *Options) loader() Loader {
	if o != nil && o.Loader != nil {
		return o.Loader
	}
	roots := []string{"."}
	marker := "__init__"
	if o != nil {
		if len(o.SearchRoots) > 0 {
			roots = o.SearchRoots
		}
		if o.PackageMarker != "" {
			marker = o.PackageMarker
		}
	}
	return NewFileSystemLoader(roots, marker)
}

func (o *Options) permissive() bool {
	return o != nil && o.Permissive
}

func (o *Options) ignoreMissing(key string) bool {
	if o == nil {
		return false
	}
	if o.IgnoreAllMissing {
		return true
	}
	return o.IgnoreMissing[key]
}

func (o *Options) defaultFor(key string) (Value, bool) {
	if o == nil || o.Defaults == nil {
		return nil, false
	}
	v, ok := o.Defaults[key]
	return v, ok
}

func (o *Options) ignoreType(kind string) bool {
	if o == nil {
		return false
	}
	for _, t := range o.IgnoreTypes {
		if t == kind {
			return true
		}
	}
	return false
}

func (o *Options) nonRecursive() bool {
	return o != nil && o.NonRecursive
}

func (o *Options) encoding() string {
	if o == nil {
		return ""
	}
	return o.Encoding
}
