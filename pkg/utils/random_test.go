package utils

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID("viewer")
	b := GenerateID("viewer")
	if a == b {
		t.Error("IDs should be unique")
	}
	if !strings.HasPrefix(a, "viewer_") || len(a) != len("viewer_")+16 {
		t.Errorf("unexpected id format %q", a)
	}
	if got := GenerateID(""); len(got) != 16 {
		t.Errorf("bare id %q should be 16 hex chars", got)
	}
}
