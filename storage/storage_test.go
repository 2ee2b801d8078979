package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	path, err := store.Save("abc.png", []byte("image bytes"), "image/png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "/uploads/abc.png" {
		t.Errorf("expected public path /uploads/abc.png, got %q", path)
	}

	data, err := store.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("read back %q", data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, "abc.png")); !os.IsNotExist(err) {
		t.Error("file still exists after Remove")
	}
	// Removing twice is fine.
	if err := store.Remove(path); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestDiskStoreReadMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	if _, err := store.ReadFile("/uploads/missing.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/uploads/a.png", "a.png"},
		{"uploads/a.png", "a.png"},
		{"a.png", "a.png"},
	}
	for _, tt := range tests {
		if got := fileName(tt.path); got != tt.want {
			t.Errorf("fileName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
