package service

import (
	"context"
	"fmt"

	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/database/model"
	"github.com/moohomor/storyforge/util/common"
)

// ReviewService manages reviews. Reviews inherit authorization from the
// caller's session identity; they are never independently authorized.
type ReviewService struct {
	auth *AuthService
}

func NewReviewService(auth *AuthService) *ReviewService {
	return &ReviewService{auth: auth}
}

// NewReview creates a review authored by the session's user.
func (s *ReviewService) NewReview(ctx context.Context, token string, storyID int, content string) (*model.Review, error) {
	identity, err := s.auth.Require(token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()
	db := database.GetDB().WithContext(ctx)

	var count int64
	if err := db.Model(&model.Story{}).Where("id = ?", storyID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("story %d: %w", storyID, common.ErrNotFound)
	}

	review := &model.Review{Author: identity.UserId, Story: storyID, Content: content}
	if err := db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ReviewByID(ctx context.Context, id int) (*model.Review, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	review := &model.Review{}
	err := database.GetDB().WithContext(ctx).First(review, id).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("review %d: %w", id, common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review; only its author may do so.
func (s *ReviewService) DeleteReview(ctx context.Context, token string, id int) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	review := &model.Review{}
	err := database.GetDB().WithContext(ctx).First(review, id).Error
	if database.IsNotFound(err) {
		return fmt.Errorf("review %d: %w", id, common.ErrNotFound)
	} else if err != nil {
		return err
	}
	if _, err := s.auth.RequireOwner(token, review.Author); err != nil {
		return err
	}
	return database.GetDB().WithContext(ctx).Delete(&model.Review{}, id).Error
}
