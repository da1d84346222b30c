package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/storage"
	"github.com/moohomor/storyforge/util/common"
)

// Assets live only in the blob store; the relational store has no record of
// them. Ownership is resolved through the story-read path, then gated.

// NewAsset uploads a named asset into the story's namespace.
func (s *StoryService) NewAsset(ctx context.Context, token string, storyID int, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("%w: asset name must not be empty", common.ErrValidation)
	}

	story, err := s.StoryByID(ctx, storyID, token, false)
	if err != nil {
		return err
	}
	if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
		return err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()
	key := storage.AssetKey(s.prefix, storyID, name)
	if err := s.blob.Put(ctx, key, data); err != nil {
		return err
	}
	logger.Infof("uploaded %s", key)
	return nil
}

// DeleteAsset removes a named asset after gating on the story owner.
func (s *StoryService) DeleteAsset(ctx context.Context, token string, storyID int, name string) error {
	story, err := s.StoryByID(ctx, storyID, token, false)
	if err != nil {
		return err
	}
	if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
		return err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()
	key := storage.AssetKey(s.prefix, storyID, name)
	logger.Infof("deleting %s", key)
	if err := s.blob.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return fmt.Errorf("asset %q: %w", name, common.ErrNotFound)
		}
		return err
	}
	return nil
}

// AssetContent returns the raw bytes of an asset.
func (s *StoryService) AssetContent(ctx context.Context, storyID int, name string) ([]byte, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	data, err := s.blob.Get(ctx, storage.AssetKey(s.prefix, storyID, name))
	if errors.Is(err, storage.ErrNotExist) {
		return nil, fmt.Errorf("asset %q: %w", name, common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

// ListAssets enumerates the story's asset namespace straight from the blob
// store, no relational bookkeeping involved.
func (s *StoryService) ListAssets(ctx context.Context, storyID int) ([]string, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()
	return s.blob.List(ctx, storage.AssetPrefix(s.prefix, storyID))
}
