package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/brewnote/brewnote/internal/storage"
)

// MountAssets serves recipe photos over the blob store.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	// POST /assets/{recipeID}  multipart field "photo"
	r.Post("/{recipeID}", func(w http.ResponseWriter, r *http.Request) {
		recipeID := chi.URLParam(r, "recipeID")
		f, hdr, err := r.FormFile("photo")
		if err != nil {
			http.Error(w, "photo required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		name := "photo.bin"
		if hdr != nil && hdr.Filename != "" {
			name = hdr.Filename
		}
		key := "recipes/" + recipeID + "/" + name
		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"key": key})
	})

	// GET /assets/*  -> returns the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found: "+err.Error(), http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
