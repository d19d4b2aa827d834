package httpmetrics

import "strings"

// NormalizePath collapses per-document URL segments so metric labels
// stay bounded. /api/todos/66b2... becomes /api/todos/{id}.
func NormalizePath(path string) string {
	const todosPrefix = "/api/todos/"

	if strings.HasPrefix(path, todosPrefix) && len(path) > len(todosPrefix) {
		return todosPrefix + "{id}"
	}

	return path
}
