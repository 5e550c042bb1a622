// Package service holds the event-scoped rules: list normalization on write,
// course/category membership for teams and the save-result upsert protocol.
// Storage is reached only through the interfaces below, and every error a
// store returns is expected to be classified into the apperr taxonomy.
package service

import (
	"context"

	"github.com/padraicbc/rogainizer/models"
)

// EventStore persists list-variant events. GetEvent returns an apperr
// not-found error when the id is unknown.
type EventStore interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	InsertEvent(ctx context.Context, e *models.Event) error
	UpdateEvent(ctx context.Context, e *models.Event) (bool, error)
	DeleteEvent(ctx context.Context, id int64) (bool, error)
}

// TeamStore persists teams. Update and delete are scoped by both ids and
// report whether a row was affected.
type TeamStore interface {
	ListTeams(ctx context.Context, eventID int64) ([]models.Team, error)
	GetTeam(ctx context.Context, eventID, teamID int64) (*models.Team, error)
	InsertTeam(ctx context.Context, t *models.Team) error
	UpdateTeam(ctx context.Context, t *models.Team) (bool, error)
	DeleteTeam(ctx context.Context, eventID, teamID int64) (bool, error)
}

// ResultEventStore persists scoring-variant events. FindResultEvent returns
// nil without error when no row has the natural key.
type ResultEventStore interface {
	ListResultEvents(ctx context.Context) ([]models.ResultEvent, error)
	FindResultEvent(ctx context.Context, year int, series, name string) (*models.ResultEvent, error)
	GetResultEvent(ctx context.Context, id int64) (*models.ResultEvent, error)
	InsertResultEvent(ctx context.Context, e *models.ResultEvent) error
	UpdateResultEvent(ctx context.Context, e *models.ResultEvent) (bool, error)
	DeleteResultEvent(ctx context.Context, id int64) (bool, error)
}

// UserStore persists the user directory.
type UserStore interface {
	ListUsers(ctx context.Context, limit int) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
}
