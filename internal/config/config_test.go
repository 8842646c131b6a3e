package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/resonanceenergy/ncc/internal/testutil/testlog"
	"github.com/resonanceenergy/ncc/internal/verify"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expect.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadExpectationsEmptyFileKeepsDefaults(t *testing.T) {
	testlog.Start(t)

	exp, err := LoadExpectations(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if exp != verify.DefaultExpectations() {
		t.Fatalf("unexpected expectations: %+v", exp)
	}
}

func TestLoadExpectationsOverrides(t *testing.T) {
	testlog.Start(t)

	path := writeConfig(t, `
version = " 0.2.0 "
missing_attribute = "__license__"
`)
	exp, err := LoadExpectations(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if exp.Version != "0.2.0" {
		t.Fatalf("unexpected version: %q", exp.Version)
	}
	if exp.MissingAttribute != "__license__" {
		t.Fatalf("unexpected missing attribute: %q", exp.MissingAttribute)
	}
	if exp.Author != "ResonanceEnergy" {
		t.Fatalf("author should keep default: %q", exp.Author)
	}
}

func TestLoadExpectationsRejectsBlankAndConflicts(t *testing.T) {
	testlog.Start(t)

	cases := map[string]string{
		"blank author": `author = "  "`,
		"forbidden":    `forbidden_version = "0.1.0"`,
		"unknown key":  `licence = "MIT"`,
		"bad toml":     `version = `,
		"wrong type":   `version = 1`,
	}
	for name, content := range cases {
		if _, err := LoadExpectations(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadExpectationsMissingFile(t *testing.T) {
	testlog.Start(t)

	path := filepath.Join(t.TempDir(), "absent.toml")
	_, err := LoadExpectations(path)
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load failure, got %v", err)
	}
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	testlog.Start(t)

	path := filepath.Join(t.TempDir(), "expect.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	exp, err := LoadExpectations(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if exp != verify.DefaultExpectations() {
		t.Fatalf("template round trip mismatch: %+v", exp)
	}

	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
}
