package db

import "strings"

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation. With a constraintName the check narrows to that
// constraint; the agenda upsert relies on this to treat a concurrent insert
// as already-done rather than as a failure.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
