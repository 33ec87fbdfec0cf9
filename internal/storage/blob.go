package storage

import "io"

// BlobStore holds recipe photos keyed by "recipes/{id}/...".
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(prefix string) error // removes everything under the prefix
	SignedURL(key string) (string, error)
}
