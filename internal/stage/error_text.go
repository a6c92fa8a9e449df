package stage

import "strings"

// sanitizeErrorMessage folds a message on a single line.
func sanitizeErrorMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}
