package store

import (
	"context"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/models"
)

// ListEvents returns all events by date, then id.
func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	err := s.db.NewSelect().
		Model(&events).
		OrderExpr("e.event_date ASC, e.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, db.Classify(err, eventsTable)
	}
	return events, nil
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	e := &models.Event{}
	err := s.db.NewSelect().Model(e).Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, db.Classify(err, eventsTable)
	}
	return e, nil
}

// InsertEvent writes e and sets its ID.
func (s *Store) InsertEvent(ctx context.Context, e *models.Event) error {
	if _, err := s.db.NewInsert().Model(e).Returning("id").Exec(ctx); err != nil {
		return db.Classify(err, eventsTable)
	}
	return nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *models.Event) (bool, error) {
	res, err := s.db.NewUpdate().
		Model(e).
		Column("name", "event_date", "location", "courses", "categories").
		WherePK().
		Exec(ctx)
	return affected(res, err, eventsTable)
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err, eventsTable)
}
