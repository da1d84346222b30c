// Package storage provides the blob store used for story text and binary
// assets. Blobs live under path-like keys scoped by an environment-configured
// prefix; the relational store keeps no record of them.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotExist is returned when a key has no blob behind it.
var ErrNotExist = errors.New("blob does not exist")

// Store is the blob store contract. Keys are full path-like strings,
// including the configured root prefix.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// List returns the names (the part after prefix) of all blobs under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// StoryContentKey returns the key of a story's text content.
func StoryContentKey(prefix string, storyID int) string {
	return fmt.Sprintf("%s/stories/%d.xml", prefix, storyID)
}

// AssetKey returns the key of a named asset belonging to a story.
func AssetKey(prefix string, storyID int, name string) string {
	return fmt.Sprintf("%s/assets/%d/%s", prefix, storyID, name)
}

// AssetPrefix returns the namespace holding all assets of a story.
func AssetPrefix(prefix string, storyID int) string {
	return fmt.Sprintf("%s/assets/%d/", prefix, storyID)
}
