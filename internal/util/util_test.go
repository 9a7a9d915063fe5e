package util

import (
	"strings"
	"testing"
)

func TestNewRequestIDUnique(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
	if !strings.HasPrefix(a, "req_") || len(a) != len("req_")+26 {
		t.Fatalf("unexpected id shape %q", a)
	}
}

func TestRenderTemplate(t *testing.T) {
	got := RenderTemplate("Product {code} not found", map[string]string{"code": "IP15PRO"})
	if got != "Product IP15PRO not found" {
		t.Fatalf("got %q", got)
	}
}
