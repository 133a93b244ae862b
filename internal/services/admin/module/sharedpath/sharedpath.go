// Package sharedpath splits route suffixes into segments for route modules
// that dispatch on path parameters.
package sharedpath

import "strings"

// Segments returns the non-empty, space-trimmed segments of path after
// prefix. It returns nil when path does not start with prefix.
func Segments(path string, prefix string) []string {
	if !strings.HasPrefix(path, prefix) {
		return nil
	}
	return SplitPathParts(strings.TrimPrefix(path, prefix))
}

// SplitPathParts normalizes a slash-delimited route suffix into non-empty path segments.
func SplitPathParts(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
