// Package service holds the business logic between the HTTP controllers and
// the two backing stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moohomor/storyforge/config"
	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/database/model"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/util/common"
	"github.com/moohomor/storyforge/util/crypto"
	"github.com/moohomor/storyforge/web/session"

	"gorm.io/gorm"
)

// storeTimeout bounds every backing-store round trip so a hung store cannot
// hang the request forever.
const storeTimeout = 10 * time.Second

func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// AuthService owns registration, login and the authorization gate. The gate
// never panics: it returns a decision as an error value.
type AuthService struct {
	registry *session.Registry
}

func NewAuthService(registry *session.Registry) *AuthService {
	return &AuthService{registry: registry}
}

func (s *AuthService) Register(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return fmt.Errorf("%w: login and password must not be empty", common.ErrValidation)
	}

	hash, err := crypto.HashPassword(password, config.GetPasswordSalt())
	if err != nil {
		return err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()
	err = database.GetDB().WithContext(ctx).
		Create(&model.User{Name: login, Password: hash}).
		Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: login is already taken", common.ErrValidation)
	}
	return err
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	user := &model.User{}
	err := database.GetDB().WithContext(ctx).
		Where("name = ?", login).
		First(user).
		Error
	if database.IsNotFound(err) {
		return "", fmt.Errorf("%w: wrong login or password", common.ErrNotAuthenticated)
	} else if err != nil {
		return "", err
	}

	if !crypto.CheckPassword(user.Password, password, config.GetPasswordSalt()) {
		return "", fmt.Errorf("%w: wrong login or password", common.ErrNotAuthenticated)
	}

	token := s.registry.Create(user.Id, user.Name)
	logger.Infof("user %q logged in", user.Name)
	return token, nil
}

// Logout destroys the session. Destroying an unknown token is a no-op.
func (s *AuthService) Logout(token string) {
	s.registry.Destroy(token)
}

// Require resolves the session or denies with ErrNotAuthenticated.
func (s *AuthService) Require(token string) (session.Identity, error) {
	if token == "" {
		return session.Identity{}, common.ErrNotAuthenticated
	}
	identity, ok := s.registry.Lookup(token)
	if !ok {
		return session.Identity{}, common.ErrNotAuthenticated
	}
	return identity, nil
}

// RequireOwner resolves the session and denies with ErrNotAuthorized unless
// it is bound to ownerID. Callers must fetch ownerID fresh from the
// relational store within the same operation.
func (s *AuthService) RequireOwner(token string, ownerID int) (session.Identity, error) {
	identity, err := s.Require(token)
	if err != nil {
		return session.Identity{}, err
	}
	if identity.UserId != ownerID {
		return session.Identity{}, common.ErrNotAuthorized
	}
	return identity, nil
}
