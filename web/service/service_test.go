package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/storage"
	"github.com/moohomor/storyforge/web/session"

	"github.com/op/go-logging"
)

type fixture struct {
	auth   *AuthService
	story  *StoryService
	review *ReviewService
	user   *UserService
	blob   storage.Store
}

func setup(t *testing.T) *fixture {
	t.Helper()
	logger.InitLogger(logging.ERROR)

	dir := t.TempDir()
	if err := database.InitDB(filepath.Join(dir, "test.db")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.CloseDB() })

	blob, err := storage.OpenBolt(filepath.Join(dir, "blob.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { blob.Close() })

	auth := NewAuthService(session.NewRegistry())
	return &fixture{
		auth:   auth,
		story:  NewStoryService(auth, blob),
		review: NewReviewService(auth),
		user:   NewUserService(),
		blob:   blob,
	}
}

// mustLogin registers the user if needed and returns a fresh session token.
func (f *fixture) mustLogin(t *testing.T, name string) string {
	t.Helper()
	ctx := context.Background()
	_ = f.auth.Register(ctx, name, "secret")
	token, err := f.auth.Login(ctx, name, "secret")
	if err != nil {
		t.Fatalf("login %s: %v", name, err)
	}
	return token
}
