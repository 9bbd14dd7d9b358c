package shared

import (
	"errors"
	"strings"
	"testing"
)

func TestIsSQLiteConflictError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"busy", errors.New("step: SQLITE_BUSY"), true},
		{"locked", errors.New("database is locked (5)"), true},
		{"other", errors.New("disk I/O error"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSQLiteConflictError(tc.err); got != tc.want {
				t.Errorf("IsSQLiteConflictError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestSaveFailureNotice(t *testing.T) {
	if got := SaveFailureNotice(nil); got != "" {
		t.Fatalf("expected empty notice for nil error, got %q", got)
	}

	locked := SaveFailureNotice(errors.New("database is locked"))
	if !strings.Contains(locked, "in use by another program") {
		t.Fatalf("unexpected locked notice: %q", locked)
	}

	generic := SaveFailureNotice(errors.New("no space left on device"))
	if !strings.Contains(generic, "storage is unavailable") {
		t.Fatalf("unexpected generic notice: %q", generic)
	}
}
