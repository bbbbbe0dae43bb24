package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TC Sorgulama", "tc_sorgulama"},
		{"Tapu Sorgulama (Hanedan)", "tapu_sorgulama_hanedan"},
		{"Ad Soyad PRO Sorgulama", "ad_soyad_pro_sorgulama"},
		{"already_normalized", "already_normalized"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != len(defaultEntries) {
		t.Fatalf("expected %d descriptors, got %d", len(defaultEntries), c.Len())
	}

	desc, ok := c.Lookup("TC Sorgulama")
	if !ok {
		t.Fatal("expected lookup by display name to succeed")
	}
	if desc.URLTemplate == "" || len(desc.Params) != 1 || desc.Params[0] != "tc" {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}

	// Lookup accepts the normalized form as well.
	if _, ok := c.Lookup("tapu_sorgulama_hanedan"); !ok {
		t.Fatal("expected lookup by normalized name to succeed")
	}

	if _, ok := c.Lookup("does not exist"); ok {
		t.Fatal("expected unknown name to miss")
	}
}

func TestNewRejectsNormalizedCollisions(t *testing.T) {
	_, err := New([]Descriptor{
		{Name: "Tapu Sorgulama (Hanedan)", URLTemplate: "http://x/a?tc={tc}", Params: []string{"tc"}},
		{Name: "Tapu Sorgulama Hanedan", URLTemplate: "http://x/b?tc={tc}", Params: []string{"tc"}},
	})
	if err == nil {
		t.Fatal("expected collision error")
	}
}

func TestNewRejectsEmptyFields(t *testing.T) {
	if _, err := New([]Descriptor{{Name: "", URLTemplate: "http://x"}}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := New([]Descriptor{{Name: "X", URLTemplate: ""}}); err == nil {
		t.Fatal("expected error for empty template")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
- name: Test Sorgulama
  url: http://upstream.test/q?tc={tc}
  params: [tc]
- name: Other Sorgulama
  url: http://upstream.test/o?ad={ad}&soyad={soyad}
  params: [ad, soyad]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 descriptors, got %d", c.Len())
	}
	desc, ok := c.Lookup("test_sorgulama")
	if !ok {
		t.Fatal("expected loaded descriptor to resolve")
	}
	if desc.URLTemplate != "http://upstream.test/q?tc={tc}" {
		t.Fatalf("unexpected template: %q", desc.URLTemplate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
