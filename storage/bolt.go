package storage

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var blobBucket = []byte("blobs")

// BoltStore keeps blobs in a single-file bbolt database, one bucket, the
// full path-like key as the bucket key. Default backend for local deployments.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the blob database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), fs.ModePerm); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blobBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(blobBucket).Get([]byte(key))
		if v == nil {
			return ErrNotExist
		}
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *BoltStore) Put(ctx context.Context, key string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobBucket).Put([]byte(key), data)
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(blobBucket)
		if bucket.Get([]byte(key)) == nil {
			return ErrNotExist
		}
		return bucket.Delete([]byte(key))
	})
}

func (s *BoltStore) List(ctx context.Context, prefix string) ([]string, error) {
	names := make([]string, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(blobBucket).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			names = append(names, strings.TrimPrefix(string(k), prefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
