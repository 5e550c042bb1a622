package store

import (
	"context"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/models"
)

// ListUsers returns up to limit users, newest first.
func (s *Store) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	users := []models.User{}
	err := s.db.NewSelect().
		Model(&users).
		OrderExpr("u.id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, db.Classify(err, usersTable)
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	if err := s.db.NewSelect().Model(u).Where("u.id = ?", id).Scan(ctx); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, db.Classify(err, usersTable)
	}
	return u, nil
}

func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	if _, err := s.db.NewInsert().Model(u).Returning("id, created_at").Exec(ctx); err != nil {
		return db.Classify(err, usersTable)
	}
	return nil
}
