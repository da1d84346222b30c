package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBolt(filepath.Join(t.TempDir(), "blob.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltPutGetDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Put(ctx, "/storage/stories/1.xml", []byte("hello"))
	assert.NoError(t, err)

	data, err := store.Get(ctx, "/storage/stories/1.xml")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	// full replace
	err = store.Put(ctx, "/storage/stories/1.xml", []byte("rewritten"))
	assert.NoError(t, err)
	data, _ = store.Get(ctx, "/storage/stories/1.xml")
	assert.Equal(t, []byte("rewritten"), data)

	err = store.Delete(ctx, "/storage/stories/1.xml")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "/storage/stories/1.xml")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestBoltMissingKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "/storage/stories/404.xml")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.ErrorIs(t, store.Delete(ctx, "/storage/stories/404.xml"), ErrNotExist)
}

func TestBoltListPrefix(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, AssetKey("/storage", 7, "a.png"), []byte{1}))
	assert.NoError(t, store.Put(ctx, AssetKey("/storage", 7, "b.png"), []byte{2}))
	assert.NoError(t, store.Put(ctx, AssetKey("/storage", 8, "c.png"), []byte{3}))
	assert.NoError(t, store.Put(ctx, StoryContentKey("/storage", 7), []byte("text")))

	names, err := store.List(ctx, AssetPrefix("/storage", 7))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png"}, names)

	names, err = store.List(ctx, AssetPrefix("/storage", 9))
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "/storage/stories/3.xml", StoryContentKey("/storage", 3))
	assert.Equal(t, "/storage/assets/3/pic.png", AssetKey("/storage", 3, "pic.png"))
	assert.Equal(t, "/storage/assets/3/", AssetPrefix("/storage", 3))
}
