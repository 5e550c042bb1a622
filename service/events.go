package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/models"
	"github.com/padraicbc/rogainizer/normalize"
)

// EventInput is the writable part of a list-variant event. Courses and
// Categories take whatever the client sent; non-lists normalize to empty.
type EventInput struct {
	Name       string
	Date       string
	Location   string
	Courses    any
	Categories any
}

// EventManager handles list-variant event CRUD.
type EventManager struct {
	store EventStore
	log   *zap.Logger
}

func NewEventManager(store EventStore, log *zap.Logger) *EventManager {
	return &EventManager{store: store, log: log.Named("events")}
}

func (m *EventManager) List(ctx context.Context) ([]models.Event, error) {
	events, err := m.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Date = normalize.DisplayDate(events[i].Date)
	}
	return events, nil
}

func (m *EventManager) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	e, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := m.store.InsertEvent(ctx, e); err != nil {
		return nil, err
	}
	m.log.Info("event created", zap.Int64("event_id", e.ID), zap.String("name", e.Name))
	return m.reload(ctx, e.ID)
}

func (m *EventManager) Update(ctx context.Context, id int64, in EventInput) (*models.Event, error) {
	if err := requireID(id, "event"); err != nil {
		return nil, err
	}
	e, err := in.toModel()
	if err != nil {
		return nil, err
	}
	e.ID = id

	ok, err := m.store.UpdateEvent(ctx, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("event not found")
	}
	m.log.Info("event updated", zap.Int64("event_id", id))
	return m.reload(ctx, id)
}

func (m *EventManager) Delete(ctx context.Context, id int64) error {
	if err := requireID(id, "event"); err != nil {
		return err
	}
	ok, err := m.store.DeleteEvent(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("event not found")
	}
	m.log.Info("event deleted", zap.Int64("event_id", id))
	return nil
}

func (m *EventManager) reload(ctx context.Context, id int64) (*models.Event, error) {
	e, err := m.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Date = normalize.DisplayDate(e.Date)
	return e, nil
}

func (in EventInput) toModel() (*models.Event, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || strings.TrimSpace(in.Date) == "" || location == "" {
		return nil, apperr.Validation("name, date, and location are required")
	}
	date, ok := normalize.Date(in.Date)
	if !ok {
		return nil, apperr.Validation("date must be a calendar date (YYYY-MM-DD)")
	}
	return &models.Event{
		Name:       name,
		Date:       date,
		Location:   location,
		Courses:    normalize.List(in.Courses),
		Categories: normalize.List(in.Categories),
	}, nil
}

func requireID(id int64, what string) error {
	if id <= 0 {
		return apperr.Validationf("invalid %s id", what)
	}
	return nil
}
