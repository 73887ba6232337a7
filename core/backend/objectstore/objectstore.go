// Package objectstore stores entries as objects in an S3 compatible bucket.
//
// Each entry is one object at "<prefix>/<folder segments>/<name>", every segment
// path-escaped so separators inside names cannot change the hierarchy.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"pathsync/core/backend"
	"pathsync/core/codec"
	"pathsync/core/path"
	"pathsync/core/storage"

	"github.com/minio/minio-go/v7"
)

// emptySegment marks a zero-length segment; PathEscape never yields a bare "%".
const emptySegment = "%"

// Backend implements backend.Backend on top of a storage.Client.
type Backend[T any] struct {
	client storage.Client
	bucket string
	prefix string
	codec  codec.Codec[T]
}

var _ backend.Backend[string] = (*Backend[string])(nil)

// New creates a backend writing below prefix in bucket.
func New[T any](client storage.Client, bucket, prefix string, c codec.Codec[T]) *Backend[T] {
	return &Backend[T]{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		codec:  c,
	}
}

func escapeSegment(s string) string {
	switch s {
	case "":
		return emptySegment
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(s)
}

func unescapeSegment(s string) (string, error) {
	if s == emptySegment {
		return "", nil
	}
	return url.PathUnescape(s)
}

// folderPrefix returns the key prefix shared by every object directly in folder.
func (b *Backend[T]) folderPrefix(folder path.FolderPath) string {
	var sb strings.Builder
	if b.prefix != "" {
		sb.WriteString(b.prefix)
		sb.WriteByte('/')
	}
	for _, segment := range folder.Segments() {
		sb.WriteString(escapeSegment(segment))
		sb.WriteByte('/')
	}
	return sb.String()
}

func (b *Backend[T]) objectKey(p path.FilePath) string {
	return b.folderPrefix(p.Folder()) + escapeSegment(p.FileName())
}

func (b *Backend[T]) parseKey(key string) (path.FilePath, error) {
	rest := key
	if b.prefix != "" {
		rest = strings.TrimPrefix(key, b.prefix+"/")
	}
	parts := strings.Split(rest, "/")
	segments := make([]string, len(parts))
	for i, part := range parts {
		segment, err := unescapeSegment(part)
		if err != nil {
			return path.FilePath{}, fmt.Errorf("objectstore: invalid object key %q: %w", key, err)
		}
		segments[i] = segment
	}
	return path.FilePathFromSegments(segments)
}

// Get implements backend.Backend.
func (b *Backend[T]) Get(ctx context.Context, p path.FilePath) (T, bool, error) {
	return b.load(ctx, b.objectKey(p))
}

func (b *Backend[T]) load(ctx context.Context, key string) (T, bool, error) {
	var zero T

	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("objectstore: get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("objectstore: read %s: %w", key, err)
	}

	item, err := b.codec.Decode(data)
	if err != nil {
		return zero, false, fmt.Errorf("objectstore: decode %s: %w", key, err)
	}
	return item, true, nil
}

// Set implements backend.Backend.
func (b *Backend[T]) Set(ctx context.Context, p path.FilePath, item *T) (T, bool, error) {
	key := b.objectKey(p)

	prev, found, err := b.load(ctx, key)
	if err != nil {
		return prev, false, err
	}

	if item == nil {
		if !found {
			return prev, false, nil
		}
		if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return prev, false, fmt.Errorf("objectstore: remove %s: %w", key, err)
		}
		return prev, true, nil
	}

	data, err := b.codec.Encode(*item)
	if err != nil {
		return prev, false, fmt.Errorf("objectstore: encode %s: %w", key, err)
	}

	_, err = b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return prev, false, fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	return prev, found, nil
}

// List implements backend.Backend. Simple listings use a delimited listing so
// nested folders are never fetched.
func (b *Backend[T]) List(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]backend.Entry[T], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:    b.folderPrefix(scope),
		Recursive: depth == path.Recursive,
	})

	entries := make([]backend.Entry[T], 0)
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("objectstore: list %s: %w", scope, obj.Err)
		}
		// Common prefixes of a delimited listing.
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		p, err := b.parseKey(obj.Key)
		if err != nil {
			return nil, err
		}
		if !path.InScope(depth, scope, p.Folder()) {
			continue
		}

		item, found, err := b.load(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		// Removed between listing and read.
		if !found {
			continue
		}
		entries = append(entries, backend.Entry[T]{Path: p, Item: item})
	}
	return entries, nil
}
