package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/models"
)

const recentUsersLimit = 100

// UserDirectory is the flat user list.
type UserDirectory struct {
	store UserStore
	log   *zap.Logger
}

func NewUserDirectory(store UserStore, log *zap.Logger) *UserDirectory {
	return &UserDirectory{store: store, log: log.Named("users")}
}

// Recent returns the newest users first.
func (d *UserDirectory) Recent(ctx context.Context) ([]models.User, error) {
	return d.store.ListUsers(ctx, recentUsersLimit)
}

func (d *UserDirectory) Create(ctx context.Context, name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, apperr.Validation("name and email are required")
	}

	u := &models.User{Name: name, Email: email}
	if err := d.store.InsertUser(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("email already exists", false)
		}
		return nil, err
	}
	d.log.Info("user created", zap.Int64("user_id", u.ID))
	return d.store.GetUser(ctx, u.ID)
}
