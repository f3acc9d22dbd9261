package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("entry")

	if got := gen.Next(); got != "entry-1" {
		t.Fatalf("expected entry-1, got %q", got)
	}
	if got := gen.Next(); got != "entry-2" {
		t.Fatalf("expected entry-2, got %q", got)
	}
}

func TestIDGeneratorDefaultsPrefix(t *testing.T) {
	gen := NewIDGenerator("")
	if got := gen.Next(); got != "id-1" {
		t.Fatalf("expected id-1, got %q", got)
	}
}

func TestIDGeneratorNextFunc(t *testing.T) {
	gen := NewIDGenerator("shift")
	next := gen.NextFunc()

	if got := next(); got != "shift-1" {
		t.Fatalf("expected shift-1, got %q", got)
	}

	var nilGen *IDGenerator
	if got := nilGen.NextFunc()(); got != "" {
		t.Fatalf("expected empty id from nil generator, got %q", got)
	}
}
