package source

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// ImageExtensions are the file types the EXIF extractor understands.
var ImageExtensions = []string{".jpg", ".jpeg", ".tif", ".tiff"}

// BlobSource enumerates and opens images stored in a gocloud.dev/blob bucket.
type BlobSource struct {
	bucket *blob.Bucket
}

// OpenBlobSource opens the bucket at uri, e.g. "file:///srv/photos" or "mem://".
func OpenBlobSource(ctx context.Context, uri string) (*BlobSource, error) {
	bucket, err := blob.OpenBucket(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open bucket %s: %w", uri, err)
	}
	return NewBlobSource(bucket), nil
}

// NewBlobSource wraps an already opened bucket.
func NewBlobSource(bucket *blob.Bucket) *BlobSource {
	return &BlobSource{bucket: bucket}
}

// List returns the keys of every image in the bucket, sorted.
func (s *BlobSource) List(ctx context.Context) ([]string, error) {
	iter := s.bucket.List(nil)

	var keys []string
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: failed to list bucket: %w", err)
		}
		if obj.IsDir || !IsImage(obj.Key) {
			continue
		}
		keys = append(keys, obj.Key)
	}

	sort.Strings(keys)
	return keys, nil
}

// Open returns a reader for the image stored under key.
func (s *BlobSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open %s: %w", key, err)
	}
	return r, nil
}

// Close releases the underlying bucket.
func (s *BlobSource) Close() error {
	return s.bucket.Close()
}

// IsImage reports whether name has one of ImageExtensions.
func IsImage(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
