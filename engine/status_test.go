package engine

import (
	"testing"

	peartube "github.com/ayooooo123/peartube"
)

func TestStatusName(t *testing.T) {
	tests := []struct {
		status peartube.Status
		name   string
	}{
		{StatusSuccess, "success"},
		{StatusNoMem, "memory allocation failed"},
		{StatusPropertyNotFound, "property not found"},
		{StatusLoadingFailed, "loading failed"},
		{StatusGeneric, "something happened"},
		{peartube.Status(-99), "unknown"},
		{peartube.Status(42), "unknown"},
	}

	for _, tt := range tests {
		if got := StatusName(tt.status); got != tt.name {
			t.Errorf("StatusName(%d) = %q, want %q", tt.status, got, tt.name)
		}
	}
}

func TestStatusFailed(t *testing.T) {
	if StatusSuccess.Failed() {
		t.Error("success must not report failure")
	}
	if !StatusGeneric.Failed() {
		t.Error("negative status must report failure")
	}
	if peartube.Status(1).Failed() {
		t.Error("positive status is informational, not failure")
	}
}
