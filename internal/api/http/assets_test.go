package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/brewnote/brewnote/internal/api/http"
	"github.com/brewnote/brewnote/internal/storage"
)

func newAssetRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()
	bs, err := storage.NewFSStore(filepath.Join(root, "blobs"))
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	r := chi.NewRouter()
	r.Route("/assets", func(ar chi.Router) { api.MountAssets(ar, bs) })
	return r, root
}

func TestAssets_GetRejectsPathTraversal(t *testing.T) {
	r, root := newAssetRouter(t)

	secret := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(secret, []byte("top-secret"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	// Raw clients can send unnormalized paths; the wildcard must not let them
	// climb out of the blob base.
	for _, target := range []string{
		"/assets/../secret.txt",
		"/assets/recipes/../../secret.txt",
	} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK || strings.Contains(w.Body.String(), "top-secret") {
			t.Fatalf("GET %s: status=%d body=%q, escaped the blob base", target, w.Code, w.Body.String())
		}
	}
}

func TestAssets_GetServesStoredBlob(t *testing.T) {
	r, root := newAssetRouter(t)

	path := filepath.Join(root, "blobs", "recipes", "r1")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "photo.jpg"), []byte("jpegbytes"), 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}

	req := httptest.NewRequest("GET", "/assets/recipes/r1/photo.jpg", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "jpegbytes" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}
