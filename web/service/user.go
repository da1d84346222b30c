package service

import (
	"context"
	"fmt"

	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/database/model"
	"github.com/moohomor/storyforge/util/common"
	"github.com/moohomor/storyforge/web/entity"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// UserByID returns the public profile. With detailed set, the user's story
// and review id lists are attached; otherwise they stay null.
func (s *UserService) UserByID(ctx context.Context, id int, detailed bool) (*entity.User, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()
	db := database.GetDB().WithContext(ctx)

	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	out := &entity.User{Id: user.Id, Name: user.Name}
	if detailed {
		stories := make([]int, 0)
		err = db.Model(&model.Story{}).
			Where("author = ?", id).
			Order("id").
			Pluck("id", &stories).
			Error
		if err != nil {
			return nil, err
		}
		reviews := make([]int, 0)
		err = db.Model(&model.Review{}).
			Where("author = ?", id).
			Order("id").
			Pluck("id", &reviews).
			Error
		if err != nil {
			return nil, err
		}
		out.Stories = stories
		out.Reviews = reviews
	}
	return out, nil
}
