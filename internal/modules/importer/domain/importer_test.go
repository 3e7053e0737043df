package domain

import (
	"strings"
	"testing"
)

func validManifest() Manifest {
	return Manifest{
		Name:    "reference",
		Version: "1.0.0",
		Binary:  "/usr/local/bin/reference",
		SHA256:  strings.Repeat("a", 64),
		Enabled: true,
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Manifest)
	}{
		{"missing name", func(m *Manifest) { m.Name = "" }},
		{"missing version", func(m *Manifest) { m.Version = "" }},
		{"missing binary", func(m *Manifest) { m.Binary = "" }},
		{"short sha", func(m *Manifest) { m.SHA256 = "abc" }},
		{"uppercase sha", func(m *Manifest) { m.SHA256 = strings.Repeat("A", 64) }},
	}
	for _, tc := range cases {
		m := validManifest()
		tc.mutate(&m)
		if err := m.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestImportRequestValidate(t *testing.T) {
	t.Parallel()
	if err := (ImportRequest{WorkspacePath: "/tmp/w", Limit: 0}).Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := (ImportRequest{Limit: 1}).Validate(); err == nil {
		t.Fatalf("expected workspace path error")
	}
	if err := (ImportRequest{WorkspacePath: "/tmp/w", Limit: -1}).Validate(); err == nil {
		t.Fatalf("expected negative limit error")
	}
}

func TestImportedItemValidate(t *testing.T) {
	t.Parallel()
	if err := (ImportedItem{Name: "Check In", DefaultMinutes: 5}).Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	if err := (ImportedItem{DefaultMinutes: 5}).Validate(); err == nil {
		t.Fatalf("expected name error")
	}
	if err := (ImportedItem{Name: "X", DefaultMinutes: -1}).Validate(); err == nil {
		t.Fatalf("expected minutes error")
	}
}
