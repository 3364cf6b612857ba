package coil

// This file implements the path algebra: absolute/relative path
// translation and validation over the dotted-key grammar.

import "strings"

// ValidateKey reports whether key is a legal struct key: [a-zA-Z_][-\w]*
// with a leading dash additionally permitted.
func ValidateKey(key string) bool {
	return reKey.MatchString(key)
}

// ValidatePath reports whether path matches the path grammar, or is
// the bare "@root" sentinel.
func ValidatePath(path string) bool {
	if path == "@root" {
		return true
	}
	return rePath.MatchString(path) && rePath.FindString(path) == path
}

// splitPath splits path on '.'; a bare "@root" yields []string{"@root"}.
func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// AbsolutePath translates p into its absolute form, relative to ref (which
// must already be absolute, e.g. a struct's own node path). If p is
// already absolute it is returned unchanged. An error is returned if p
// ascends past @root.
func AbsolutePath(ref, p string) (string, error) {
	if strings.HasPrefix(p, "@root") {
		return p, nil
	}

	names := strings.TrimLeft(p, ".")
	dots := len(p) - len(names)
	split := splitPath(ref)

	if dots > len(split) {
		return "", dataErrorAt(Location{}, ref, "relative reference past root")
	}
	if dots > 1 {
		split = split[:len(split)-dots+1]
	}
	if names != "" {
		split = append(split, names)
	}
	return strings.Join(split, "."), nil
}

// RelativePath computes the shortest path from ref (absolute) to the
// absolute path p. If p is not absolute it is returned unchanged.
func RelativePath(ref, p string) string {
	if !strings.HasPrefix(p, "@root") {
		return p
	}

	splitP := splitPath(p)
	splitRef := splitPath(ref)

	common := 0
	limit := len(splitRef)
	if len(splitP) < limit {
		limit = len(splitP)
	}
	for i := 0; i < limit; i++ {
		if splitRef[i] == splitP[i] {
			common = i
		} else {
			break
		}
	}

	dots := len(splitRef) - common
	var names string
	if common+1 < len(splitP) {
		names = strings.Join(splitP[common+1:], ".")
	}

	if dots == 1 && names != "" {
		return names
	}
	return strings.Repeat(".", dots) + names
}
