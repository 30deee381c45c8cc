package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"successful write", []byte("dir: public/resized_cards\n"), 0644},
		{"empty data", []byte{}, 0644},
		{"private permissions", []byte("secret\n"), 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pngtidy.yaml")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat file: %v", err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("permissions = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "pngtidy.yaml")
	if err := AtomicWriteFile(path, []byte("x"), 0644); err == nil {
		t.Error("AtomicWriteFile() should fail when the parent directory is missing")
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pngtidy.yaml")

	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("new\n"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Errorf("content = %q, want %q", got, "new\n")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".pngtidy-atomic-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteFile_NoTempFileLeftOnError(t *testing.T) {
	dir := t.TempDir()
	// Renaming a file over a non-empty directory fails.
	target := filepath.Join(dir, "occupied")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(target, []byte("x"), 0644); err == nil {
		t.Fatal("AtomicWriteFile() should fail when the target is a non-empty directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the occupied directory, found %d entries", len(entries))
	}
}

func TestAtomicWriteEncoded(t *testing.T) {
	v := struct {
		Version int    `yaml:"version" toml:"version" json:"version"`
		Dir     string `yaml:"dir" toml:"dir" json:"dir"`
	}{1, "public/resized_cards"}

	tests := []struct {
		file string
		want []string
	}{
		{"pngtidy.yaml", []string{"version: 1", "dir: public/resized_cards"}},
		{"pngtidy.yml", []string{"version: 1"}},
		{"pngtidy.toml", []string{"version = 1", "dir = 'public/resized_cards'"}},
		{"pngtidy.json", []string{`"version": 1`, `"dir": "public/resized_cards"`}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := AtomicWriteEncoded(path, v, 0644); err != nil {
				t.Fatalf("AtomicWriteEncoded() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(got), want) {
					t.Errorf("%s missing %q:\n%s", tt.file, want, got)
				}
			}
			if !strings.HasSuffix(string(got), "\n") {
				t.Errorf("%s should end with a newline", tt.file)
			}
		})
	}
}

func TestAtomicWriteEncoded_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pngtidy.ini")
	if err := AtomicWriteEncoded(path, map[string]int{"a": 1}, 0644); err == nil {
		t.Error("AtomicWriteEncoded() should reject .ini")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nothing should be written for an unknown encoding")
	}
}
