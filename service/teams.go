package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/models"
	"github.com/padraicbc/rogainizer/normalize"
)

// TeamInput is the writable part of a team. A nil Score means the client
// omitted it; a NaN Score means the client sent something non-numeric.
type TeamInput struct {
	Name        string
	Competitors string
	Course      string
	Category    string
	Score       *float64
}

// TeamManager runs team CRUD scoped to one event.
//
// Create and update read the event's configured sets and then write without a
// transaction, so an event edited between the two steps is not revalidated.
type TeamManager struct {
	events EventStore
	teams  TeamStore
	log    *zap.Logger
}

func NewTeamManager(events EventStore, teams TeamStore, log *zap.Logger) *TeamManager {
	return &TeamManager{events: events, teams: teams, log: log.Named("teams")}
}

func (m *TeamManager) List(ctx context.Context, eventID int64) ([]models.Team, error) {
	if err := requireID(eventID, "event"); err != nil {
		return nil, err
	}
	return m.teams.ListTeams(ctx, eventID)
}

// Create adds a team to the event. An omitted score defaults to zero.
func (m *TeamManager) Create(ctx context.Context, eventID int64, in TeamInput) (*models.Team, error) {
	if err := requireID(eventID, "event"); err != nil {
		return nil, err
	}
	if in.Score == nil {
		zero := 0.0
		in.Score = &zero
	}
	t, err := m.prepare(ctx, eventID, in)
	if err != nil {
		return nil, err
	}

	if err := m.teams.InsertTeam(ctx, t); err != nil {
		return nil, err
	}
	m.log.Info("team created",
		zap.Int64("event_id", eventID),
		zap.Int64("team_id", t.ID),
		zap.String("course", t.Course),
		zap.String("category", t.Category),
	)
	return m.teams.GetTeam(ctx, eventID, t.ID)
}

// Update replaces a team's fields. Unlike Create, the score must be supplied.
func (m *TeamManager) Update(ctx context.Context, eventID, teamID int64, in TeamInput) (*models.Team, error) {
	if err := requireID(eventID, "event"); err != nil {
		return nil, err
	}
	if err := requireID(teamID, "team"); err != nil {
		return nil, err
	}
	t, err := m.prepare(ctx, eventID, in)
	if err != nil {
		return nil, err
	}
	t.ID = teamID

	ok, err := m.teams.UpdateTeam(ctx, t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("team not found")
	}
	m.log.Info("team updated", zap.Int64("event_id", eventID), zap.Int64("team_id", teamID))
	return m.teams.GetTeam(ctx, eventID, teamID)
}

func (m *TeamManager) Delete(ctx context.Context, eventID, teamID int64) error {
	if err := requireID(eventID, "event"); err != nil {
		return err
	}
	if err := requireID(teamID, "team"); err != nil {
		return err
	}
	ok, err := m.teams.DeleteTeam(ctx, eventID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("team not found")
	}
	m.log.Info("team deleted", zap.Int64("event_id", eventID), zap.Int64("team_id", teamID))
	return nil
}

// prepare validates in against the owning event and builds the row to write.
// Field checks run before the event is read.
func (m *TeamManager) prepare(ctx context.Context, eventID int64, in TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(in.Name)
	course := strings.TrimSpace(in.Course)
	category := strings.TrimSpace(in.Category)
	competitors := normalize.Competitors(in.Competitors)
	if name == "" || competitors == "" || course == "" || category == "" {
		return nil, apperr.Validation("name, competitors, course, category, and score are required")
	}
	score, err := validScore(in.Score)
	if err != nil {
		return nil, err
	}

	event, err := m.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := ValidateMembership(event.Courses, event.Categories, course, category); err != nil {
		return nil, err
	}

	return &models.Team{
		EventID:     eventID,
		Name:        name,
		Competitors: competitors,
		Course:      course,
		Category:    category,
		Score:       score,
	}, nil
}

func validScore(score *float64) (float64, error) {
	if score == nil || math.IsNaN(*score) || math.IsInf(*score, 0) || *score < 0 {
		return 0, apperr.Validation("score must be a non-negative number")
	}
	return *score, nil
}
