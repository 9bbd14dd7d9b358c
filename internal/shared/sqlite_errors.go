// Package shared provides common utilities used across the codebase.
//
//nolint:revive // "shared" is an intentional package name for cross-cutting helpers.
package shared

import "strings"

// IsSQLiteBusyError checks if the error is a SQLITE_BUSY error.
func IsSQLiteBusyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "SQLITE_BUSY")
}

// IsSQLiteLockedError checks if the error is a "database is locked" error.
func IsSQLiteLockedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "database is locked")
}

// IsSQLiteConflictError reports whether another process is holding the database.
func IsSQLiteConflictError(err error) bool {
	if err == nil {
		return false
	}
	return IsSQLiteBusyError(err) || IsSQLiteLockedError(err)
}

// SaveFailureNotice renders a one-line, user-facing explanation for a failed session save.
func SaveFailureNotice(err error) string {
	switch {
	case err == nil:
		return ""
	case IsSQLiteConflictError(err):
		return "Could not save this session: the database is in use by another program. Your answer is shown above but was not logged."
	default:
		return "Could not save this session: storage is unavailable. Your answer is shown above but was not logged."
	}
}
