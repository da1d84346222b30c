package service

import (
	"context"
	"testing"

	"github.com/moohomor/storyforge/util/common"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	err := f.auth.Register(ctx, "alice", "secret")
	assert.NoError(t, err)

	token, err := f.auth.Login(ctx, "alice", "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := f.auth.Require(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", identity.Name)
}

func TestRegisterValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.auth.Register(ctx, "", "secret"), common.ErrValidation)
	assert.ErrorIs(t, f.auth.Register(ctx, "alice", ""), common.ErrValidation)

	assert.NoError(t, f.auth.Register(ctx, "alice", "secret"))
	assert.ErrorIs(t, f.auth.Register(ctx, "alice", "other"), common.ErrValidation)
}

func TestLoginWrongCredentials(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	assert.NoError(t, f.auth.Register(ctx, "alice", "secret"))

	_, err := f.auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)

	_, err = f.auth.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestLogoutDestroysSession(t *testing.T) {
	f := setup(t)
	token := f.mustLogin(t, "alice")

	f.auth.Logout(token)
	_, err := f.auth.Require(token)
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)

	// idempotent, unknown tokens included
	f.auth.Logout(token)
	f.auth.Logout("never-issued")
}

func TestRequire(t *testing.T) {
	f := setup(t)

	_, err := f.auth.Require("")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	_, err = f.auth.Require("unknown")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestRequireOwner(t *testing.T) {
	f := setup(t)
	token := f.mustLogin(t, "alice")

	identity, err := f.auth.Require(token)
	assert.NoError(t, err)

	_, err = f.auth.RequireOwner(token, identity.UserId)
	assert.NoError(t, err)

	_, err = f.auth.RequireOwner(token, identity.UserId+1)
	assert.ErrorIs(t, err, common.ErrNotAuthorized)

	_, err = f.auth.RequireOwner("", identity.UserId)
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestUserByID(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	token := f.mustLogin(t, "alice")
	identity, _ := f.auth.Require(token)

	story, err := f.story.CreateStory(ctx, token, "Draft", "hello")
	assert.NoError(t, err)
	review, err := f.review.NewReview(ctx, token, story.Id, "nice")
	assert.NoError(t, err)

	user, err := f.user.UserByID(ctx, identity.UserId, false)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Nil(t, user.Stories)
	assert.Nil(t, user.Reviews)

	user, err = f.user.UserByID(ctx, identity.UserId, true)
	assert.NoError(t, err)
	assert.Equal(t, []int{story.Id}, user.Stories)
	assert.Equal(t, []int{review.Id}, user.Reviews)

	_, err = f.user.UserByID(ctx, 9999, false)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
