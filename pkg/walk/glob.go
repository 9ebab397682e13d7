package walk

import (
	"fmt"
	"path"
	"strings"
)

// ValidatePattern reports whether pattern is a well-formed ignore glob.
func ValidatePattern(pattern string) error {
	for _, part := range strings.Split(pattern, "**") {
		if _, err := path.Match(part, ""); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// matchesAny checks if the relative path matches any pattern.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob pattern.
// It supports patterns like "*.log", "vendor/**", "**/testdata", etc.
// Patterns without a slash also match against the base name.
func matchGlob(relPath, pattern string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(relPath, pattern)
	}

	if matched, err := path.Match(pattern, relPath); err == nil && matched {
		return true
	}

	matched, err := path.Match(pattern, path.Base(relPath))
	return err == nil && matched
}

// matchDoubleStarPattern handles ** glob patterns.
func matchDoubleStarPattern(relPath, pattern string) bool {
	parts := strings.Split(pattern, "**")

	// "**/foo" matches foo as any path component or suffix.
	if parts[0] == "" && len(parts) == 2 {
		suffix := strings.TrimPrefix(parts[1], "/")
		if suffix == "" {
			return true
		}

		if relPath == suffix || strings.HasSuffix(relPath, "/"+suffix) {
			return true
		}

		for _, component := range strings.Split(relPath, "/") {
			if matched, err := path.Match(suffix, component); err == nil && matched {
				return true
			}
		}

		return false
	}

	// "foo/**" matches foo and anything under it.
	if len(parts) == 2 && (parts[1] == "" || parts[1] == "/") {
		prefix := strings.TrimSuffix(parts[0], "/")
		if prefix == "" {
			return true
		}
		return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
	}

	// ** in the middle: prefix must lead, suffix must trail or match the base name.
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[len(parts)-1], "/")

	if prefix != "" && relPath != prefix && !strings.HasPrefix(relPath, prefix+"/") {
		return false
	}

	if suffix == "" || strings.HasSuffix(relPath, suffix) {
		return true
	}

	matched, err := path.Match(suffix, path.Base(relPath))
	return err == nil && matched
}
