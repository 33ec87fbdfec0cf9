package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, "blobs")
	s, err := NewFSStore(base)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, root
}

func TestFSStore_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	key := "recipes/r1/photo.jpg"
	if _, err := s.Put(key, strings.NewReader("jpegbytes")); err != nil {
		t.Fatalf("put: %v", err)
	}
	rc, err := s.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "jpegbytes" {
		t.Fatalf("content: %q", got)
	}
}

func TestFSStore_GetRejectsEscapingKeys(t *testing.T) {
	s, root := newTestStore(t)

	// A file next to (not under) the blob base must stay unreachable.
	outside := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(outside, []byte("top-secret"), 0o600); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	for _, key := range []string{
		"../secret.txt",
		"recipes/../../secret.txt",
		"..",
		outside, // absolute path
	} {
		if rc, err := s.Get(key); err == nil {
			rc.Close()
			t.Fatalf("Get(%q) should fail", key)
		}
	}
}

func TestFSStore_PutRejectsEscapingKeys(t *testing.T) {
	s, root := newTestStore(t)

	for _, key := range []string{"", "../evil.txt", "a/../../evil.txt"} {
		if _, err := s.Put(key, strings.NewReader("x")); err == nil {
			t.Fatalf("Put(%q) should fail", key)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "evil.txt")); !os.IsNotExist(err) {
		t.Fatalf("file escaped the blob base")
	}
}
