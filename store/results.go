package store

import (
	"context"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/models"
)

func (s *Store) ListResultEvents(ctx context.Context) ([]models.ResultEvent, error) {
	events := []models.ResultEvent{}
	err := s.db.NewSelect().
		Model(&events).
		OrderExpr("e.event_date ASC, e.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, db.Classify(err, eventsTable)
	}
	return events, nil
}

// FindResultEvent looks an event up by its natural key. A missing row is not an error.
func (s *Store) FindResultEvent(ctx context.Context, year int, series, name string) (*models.ResultEvent, error) {
	e := &models.ResultEvent{}
	err := s.db.NewSelect().
		Model(e).
		Where("e.year = ?", year).
		Where("e.series = ?", series).
		Where("e.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, db.Classify(err, eventsTable)
	}
	return e, nil
}

func (s *Store) GetResultEvent(ctx context.Context, id int64) (*models.ResultEvent, error) {
	e := &models.ResultEvent{}
	err := s.db.NewSelect().Model(e).Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, db.Classify(err, eventsTable)
	}
	return e, nil
}

func (s *Store) InsertResultEvent(ctx context.Context, e *models.ResultEvent) error {
	if _, err := s.db.NewInsert().Model(e).Returning("id").Exec(ctx); err != nil {
		return db.Classify(err, eventsTable)
	}
	return nil
}

// UpdateResultEvent rewrites every mutable column of the row with e.ID.
func (s *Store) UpdateResultEvent(ctx context.Context, e *models.ResultEvent) (bool, error) {
	res, err := s.db.NewUpdate().
		Model(e).
		Column("year", "series", "name", "event_date", "organiser", "duration_hours").
		WherePK().
		Exec(ctx)
	return affected(res, err, eventsTable)
}

func (s *Store) DeleteResultEvent(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.ResultEvent)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err, eventsTable)
}
