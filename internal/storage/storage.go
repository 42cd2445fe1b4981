// Package storage publishes static storefront assets (logos, hero images)
// either to a local directory served by the app or to an S3 bucket.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type PutInput struct {
	// Key is the object path relative to the storage root. When empty a
	// random key is generated from Filename's extension.
	Key         string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// cleanKey normalises a key to a slash separated relative path, rejecting
// attempts to climb out of the root.
func cleanKey(in PutInput) string {
	key := strings.TrimSpace(in.Key)
	if key == "" {
		return uuid.NewString() + safeExt(in.Filename)
	}
	key = path.Clean("/" + filepath.ToSlash(key))
	return strings.TrimPrefix(key, "/")
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg", ".css", ".js":
		return ext
	default:
		return ""
	}
}

func joinURL(base, key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
