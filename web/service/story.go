package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moohomor/storyforge/config"
	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/database/model"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/storage"
	"github.com/moohomor/storyforge/util/common"
)

// Story listing strategies. Every order ends on id so offset/limit pages stay
// stable while the underlying data is unchanged.
const (
	ListingHome = "home"
	ListingBest = "best"
	ListingUser = "user"
)

// StoryService orchestrates the authorization gate with relational metadata
// and blob content. Every mutating operation re-fetches the owning story and
// gates on it before touching either store.
type StoryService struct {
	auth   *AuthService
	blob   storage.Store
	prefix string
}

func NewStoryService(auth *AuthService, blob storage.Store) *StoryService {
	return &StoryService{
		auth:   auth,
		blob:   blob,
		prefix: config.GetStoragePrefix(),
	}
}

// getStory fetches a story row fresh. Authorization decisions must be based
// on this value, never on anything cached.
func (s *StoryService) getStory(ctx context.Context, id int) (*model.Story, error) {
	story := &model.Story{}
	err := database.GetDB().WithContext(ctx).First(story, id).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("story %d: %w", id, common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return story, nil
}

func (s *StoryService) reviewIDs(ctx context.Context, storyID int) ([]int, error) {
	ids := make([]int, 0)
	err := database.GetDB().WithContext(ctx).
		Model(&model.Review{}).
		Where("story = ?", storyID).
		Order("id").
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// StoryByID returns a story if it is visible to the caller: public stories
// unconditionally, private ones only to their author's session.
func (s *StoryService) StoryByID(ctx context.Context, id int, token string, detailed bool) (*model.Story, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	story, err := s.getStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if story.Private {
		if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
			return nil, err
		}
	}
	if detailed {
		if story.Reviews, err = s.reviewIDs(ctx, id); err != nil {
			return nil, err
		}
	}
	return story, nil
}

// RandomStory picks one public story at random, reviews included.
func (s *StoryService) RandomStory(ctx context.Context) (*model.Story, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	story := &model.Story{}
	err := database.GetDB().WithContext(ctx).
		Where("not private").
		Order("random()").
		First(story).
		Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("no public stories: %w", common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	if story.Reviews, err = s.reviewIDs(ctx, story.Id); err != nil {
		return nil, err
	}
	return story, nil
}

// CreateStory requires a valid session, inserts the metadata row owned by the
// session's user, then writes the content blob. The row exists before the
// blob write is attempted; a blob failure leaves orphaned metadata behind.
func (s *StoryService) CreateStory(ctx context.Context, token, name, content string) (*model.Story, error) {
	identity, err := s.auth.Require(token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	story := &model.Story{Name: name, Author: identity.UserId}
	if err := database.GetDB().WithContext(ctx).Create(story).Error; err != nil {
		return nil, err
	}

	if err := s.blob.Put(ctx, storage.StoryContentKey(s.prefix, story.Id), []byte(content)); err != nil {
		logger.Warningf("story %d: content write failed, metadata row is orphaned: %v", story.Id, err)
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	story.Reviews = []int{}
	return story, nil
}

// StoryContent reads the content blob of a visible story. A missing story row
// and a missing blob are distinct failures.
func (s *StoryService) StoryContent(ctx context.Context, id int, token string) (string, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	story, err := s.getStory(ctx, id)
	if err != nil {
		return "", err
	}
	if story.Private {
		if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
			return "", err
		}
	}

	data, err := s.blob.Get(ctx, storage.StoryContentKey(s.prefix, id))
	if errors.Is(err, storage.ErrNotExist) {
		return "", fmt.Errorf("story %d content: %w", id, common.ErrNotFound)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// UpdateStoryContent replaces the content blob in full after gating on the
// freshly fetched author.
func (s *StoryService) UpdateStoryContent(ctx context.Context, token string, id int, content string) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	story, err := s.getStory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
		return err
	}
	return s.blob.Put(ctx, storage.StoryContentKey(s.prefix, id), []byte(content))
}

// UpdateStoryProperties applies only the provided fields.
func (s *StoryService) UpdateStoryProperties(ctx context.Context, token string, id int, name *string, private *bool) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	story, err := s.getStory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
		return err
	}

	updates := map[string]any{}
	if private != nil {
		updates["private"] = *private
	}
	if name != nil {
		updates["name"] = *name
	}
	if len(updates) == 0 {
		return nil
	}
	return database.GetDB().WithContext(ctx).
		Model(&model.Story{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// DeleteStory removes the metadata row, its reviews, the content blob and the
// whole asset namespace.
func (s *StoryService) DeleteStory(ctx context.Context, token string, id int) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	story, err := s.getStory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
		return err
	}

	db := database.GetDB().WithContext(ctx)
	if err := db.Where("story = ?", id).Delete(&model.Review{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&model.Story{}, id).Error; err != nil {
		return err
	}

	if err := s.blob.Delete(ctx, storage.StoryContentKey(s.prefix, id)); err != nil && !errors.Is(err, storage.ErrNotExist) {
		return err
	}
	assets, err := s.blob.List(ctx, storage.AssetPrefix(s.prefix, id))
	if err != nil {
		return err
	}
	for _, name := range assets {
		if err := s.blob.Delete(ctx, storage.AssetKey(s.prefix, id, name)); err != nil && !errors.Is(err, storage.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ListStories returns one page of stories under the given listing strategy.
// "user" requires a session and lists only the caller's stories.
func (s *StoryService) ListStories(ctx context.Context, listing, token string, offset, limit int) ([]*model.Story, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset/limit out of range", common.ErrValidation)
	}

	ctx, cancel := opContext(ctx)
	defer cancel()
	q := database.GetDB().WithContext(ctx).Model(&model.Story{})

	switch listing {
	case ListingBest:
		q = q.Order("votes desc, created_at desc, id desc")
	case ListingHome:
		q = q.Order(homeOrder())
	case ListingUser:
		identity, err := s.auth.Require(token)
		if err != nil {
			return nil, err
		}
		q = q.Where("author = ?", identity.UserId).
			Order("updated_at desc, id desc")
	default:
		return nil, fmt.Errorf("%w: unknown listing type %q", common.ErrValidation, listing)
	}

	stories := make([]*model.Story, 0, limit)
	if err := q.Offset(offset).Limit(limit).Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// homeOrder ranks by a decaying popularity score, the square of
// (votes+1) * epoch(updated_at). The sqlite branch spells the square out
// because its builds may lack power().
func homeOrder() string {
	if database.GetDB().Dialector.Name() == "postgres" {
		return "power((votes + 1) * cast(extract(epoch from updated_at) as bigint), 2) desc, id desc"
	}
	const score = "((votes + 1) * cast(strftime('%s', updated_at) as integer))"
	return score + " * " + score + " desc, id desc"
}

// IncreaseParam applies a signed delta to a counter column atomically and
// returns the post-update value. The authorization subject is always the
// story whose id equals the target id, even when the target is a review:
// votes on a review are gated by the story author's session. Intentional or
// not upstream, the behavior is kept and pinned by a test.
func (s *StoryService) IncreaseParam(ctx context.Context, token, typ, param string, id, delta int) (int, error) {
	if param != "votes" {
		return 0, fmt.Errorf("%w: unknown param %q", common.ErrValidation, param)
	}
	var table string
	switch typ {
	case "stories":
		table = "stories"
	case "reviews":
		table = "reviews"
	default:
		return 0, fmt.Errorf("%w: unknown type %q", common.ErrValidation, typ)
	}
	if delta < -1 || delta > 1 {
		return 0, fmt.Errorf("%w: delta must be -1, 0 or 1", common.ErrValidation)
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	story, err := s.getStory(ctx, id)
	if err != nil {
		return 0, err
	}
	if _, err := s.auth.RequireOwner(token, story.Author); err != nil {
		return 0, err
	}

	var newValue int
	res := database.GetDB().WithContext(ctx).
		Raw("UPDATE "+table+" SET votes = votes + ? WHERE id = ? RETURNING votes", delta, id).
		Scan(&newValue)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%s %d: %w", typ, id, common.ErrNotFound)
	}
	return newValue, nil
}
