// Package storetest provides an in-memory implementation of the service
// storage interfaces for tests.
package storetest

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/models"
	"github.com/padraicbc/rogainizer/normalize"
	"github.com/padraicbc/rogainizer/service"
)

var (
	_ service.EventStore       = (*Memory)(nil)
	_ service.TeamStore        = (*Memory)(nil)
	_ service.ResultEventStore = (*Memory)(nil)
	_ service.UserStore        = (*Memory)(nil)
)

var errForeignKey = errors.New(`insert or update on table "teams" violates foreign key constraint`)

// Memory is an in-process Store with the same observable behaviour as the
// PostgreSQL one: lists round-trip through the stored-list codec, the natural
// key and user emails are unique, and deleting an event cascades to its teams.
type Memory struct {
	mu      sync.Mutex
	nextID  int64
	events  map[int64]models.Event
	results map[int64]models.ResultEvent
	teams   map[int64]models.Team
	users   map[int64]models.User
	fail    error
	calls   int
}

func NewMemory() *Memory {
	return &Memory{
		events:  map[int64]models.Event{},
		results: map[int64]models.ResultEvent{},
		teams:   map[int64]models.Team{},
		users:   map[int64]models.User{},
	}
}

// FailWith makes every later call return err until it is reset with nil.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Calls reports how many store operations have been issued.
func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Ping verifies the store is reachable.
func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enter()
}

// enter must be called with mu held.
func (m *Memory) enter() error {
	m.calls++
	return m.fail
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

// roundTrip stores lists the way the text column would.
func roundTrip(l models.StoredList) models.StoredList {
	return normalize.DecodeList(normalize.EncodeList(l))
}

func (m *Memory) ListEvents(context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b models.Event) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

func (m *Memory) GetEvent(_ context.Context, id int64) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, apperr.NotFound("event not found")
	}
	return &e, nil
}

func (m *Memory) InsertEvent(_ context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	e.ID = m.id()
	row := *e
	row.Courses, row.Categories = roundTrip(e.Courses), roundTrip(e.Categories)
	m.events[e.ID] = row
	return nil
}

func (m *Memory) UpdateEvent(_ context.Context, e *models.Event) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	if _, ok := m.events[e.ID]; !ok {
		return false, nil
	}
	row := *e
	row.Courses, row.Categories = roundTrip(e.Courses), roundTrip(e.Categories)
	m.events[e.ID] = row
	return true, nil
}

func (m *Memory) DeleteEvent(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	if _, ok := m.events[id]; !ok {
		return false, nil
	}
	delete(m.events, id)
	for tid, t := range m.teams {
		if t.EventID == id {
			delete(m.teams, tid)
		}
	}
	return true, nil
}

func (m *Memory) ListTeams(_ context.Context, eventID int64) ([]models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := []models.Team{}
	for _, t := range m.teams {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Team) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *Memory) GetTeam(_ context.Context, eventID, teamID int64) (*models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	t, ok := m.teams[teamID]
	if !ok || t.EventID != eventID {
		return nil, apperr.NotFound("team not found")
	}
	return &t, nil
}

func (m *Memory) InsertTeam(_ context.Context, t *models.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	if _, ok := m.events[t.EventID]; !ok {
		return apperr.Storage(errForeignKey)
	}
	t.ID = m.id()
	m.teams[t.ID] = *t
	return nil
}

func (m *Memory) UpdateTeam(_ context.Context, t *models.Team) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	cur, ok := m.teams[t.ID]
	if !ok || cur.EventID != t.EventID {
		return false, nil
	}
	m.teams[t.ID] = *t
	return true, nil
}

func (m *Memory) DeleteTeam(_ context.Context, eventID, teamID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	cur, ok := m.teams[teamID]
	if !ok || cur.EventID != eventID {
		return false, nil
	}
	delete(m.teams, teamID)
	return true, nil
}

func (m *Memory) ListResultEvents(context.Context) ([]models.ResultEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := make([]models.ResultEvent, 0, len(m.results))
	for _, e := range m.results {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b models.ResultEvent) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

func (m *Memory) FindResultEvent(_ context.Context, year int, series, name string) (*models.ResultEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	for _, e := range m.results {
		if e.Year == year && e.Series == series && e.Name == name {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetResultEvent(_ context.Context, id int64) (*models.ResultEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	e, ok := m.results[id]
	if !ok {
		return nil, apperr.NotFound("event not found")
	}
	return &e, nil
}

func (m *Memory) InsertResultEvent(_ context.Context, e *models.ResultEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	if m.naturalKeyTaken(e, 0) {
		return &apperr.Error{Kind: apperr.ErrConflict, Msg: "duplicate key"}
	}
	e.ID = m.id()
	m.results[e.ID] = *e
	return nil
}

func (m *Memory) UpdateResultEvent(_ context.Context, e *models.ResultEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	if _, ok := m.results[e.ID]; !ok {
		return false, nil
	}
	if m.naturalKeyTaken(e, e.ID) {
		return false, &apperr.Error{Kind: apperr.ErrConflict, Msg: "duplicate key"}
	}
	m.results[e.ID] = *e
	return true, nil
}

func (m *Memory) DeleteResultEvent(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	if _, ok := m.results[id]; !ok {
		return false, nil
	}
	delete(m.results, id)
	return true, nil
}

func (m *Memory) naturalKeyTaken(e *models.ResultEvent, except int64) bool {
	for id, r := range m.results {
		if id != except && r.Year == e.Year && r.Series == e.Series && r.Name == e.Name {
			return true
		}
	}
	return false
}

func (m *Memory) ListUsers(_ context.Context, limit int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b models.User) int { return int(b.ID - a.ID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (m *Memory) InsertUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	for _, cur := range m.users {
		if cur.Email == u.Email {
			return &apperr.Error{Kind: apperr.ErrConflict, Msg: "duplicate key"}
		}
	}
	u.ID = m.id()
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = *u
	return nil
}
