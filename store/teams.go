package store

import (
	"context"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/models"
)

// ListTeams returns the event's teams in id order.
func (s *Store) ListTeams(ctx context.Context, eventID int64) ([]models.Team, error) {
	teams := []models.Team{}
	err := s.db.NewSelect().
		Model(&teams).
		Where("t.event_id = ?", eventID).
		OrderExpr("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, db.Classify(err, teamsTable)
	}
	return teams, nil
}

func (s *Store) GetTeam(ctx context.Context, eventID, teamID int64) (*models.Team, error) {
	t := &models.Team{}
	err := s.db.NewSelect().
		Model(t).
		Where("t.id = ?", teamID).
		Where("t.event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("team not found")
		}
		return nil, db.Classify(err, teamsTable)
	}
	return t, nil
}

// InsertTeam writes t and sets its ID.
func (s *Store) InsertTeam(ctx context.Context, t *models.Team) error {
	if _, err := s.db.NewInsert().Model(t).Returning("id").Exec(ctx); err != nil {
		return db.Classify(err, teamsTable)
	}
	return nil
}

// UpdateTeam only touches the row whose id and event_id both match t.
func (s *Store) UpdateTeam(ctx context.Context, t *models.Team) (bool, error) {
	res, err := s.db.NewUpdate().
		Model(t).
		Column("name", "competitors", "course", "category", "score").
		Where("id = ?", t.ID).
		Where("event_id = ?", t.EventID).
		Exec(ctx)
	return affected(res, err, teamsTable)
}

func (s *Store) DeleteTeam(ctx context.Context, eventID, teamID int64) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.Team)(nil)).
		Where("id = ?", teamID).
		Where("event_id = ?", eventID).
		Exec(ctx)
	return affected(res, err, teamsTable)
}
