package adapter

import (
	"errors"
	"testing"
)

func TestRegistry_KnownAdapters(t *testing.T) {
	for _, name := range []string{"sqlite", "duckdb"} {
		a, err := New(name)
		if err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
			continue
		}
		if a.DialectName() != name {
			t.Errorf("New(%q).DialectName() = %q", name, a.DialectName())
		}
	}
}

func TestRegistry_UnknownAdapter(t *testing.T) {
	_, err := New("oracle")
	if err == nil {
		t.Fatal("expected error for unknown store type, got nil")
	}

	var ue *UnknownAdapterError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnknownAdapterError, got %T: %v", err, err)
	}
	if ue.Type != "oracle" {
		t.Errorf("got type %q in error, want %q", ue.Type, "oracle")
	}
	if len(ue.Available) == 0 {
		t.Error("expected available adapters in error")
	}
}

func TestRegistry_EmptyType(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty store type, got nil")
	}
}

func TestValidTableName(t *testing.T) {
	valid := []string{"grants", "non_profits_final", "_x", "Table9"}
	invalid := []string{"", "9grants", "grants; DROP TABLE x", "a-b", "a.b"}

	for _, name := range valid {
		if !ValidTableName(name) {
			t.Errorf("ValidTableName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if ValidTableName(name) {
			t.Errorf("ValidTableName(%q) = true, want false", name)
		}
	}
}
