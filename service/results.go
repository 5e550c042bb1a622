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

const (
	msgSaved       = "Event saved successfully."
	msgOverwritten = "Event overwritten successfully."
	msgExists      = "An event with this year, series and name already exists."
)

// ResultInput is a submitted event result. Year and Duration are nil when
// omitted and NaN when the client sent something non-numeric.
type ResultInput struct {
	Year      *float64
	Series    string
	Name      string
	Date      string
	Organiser string
	Duration  *float64
	Overwrite bool
}

// SaveOutcome is what SaveResult returns on success.
type SaveOutcome struct {
	Message     string              `json:"message"`
	Event       *models.ResultEvent `json:"event"`
	Overwritten bool                `json:"-"`
}

// ResultResolver implements the save-result protocol for scoring-variant events.
//
// SaveResult checks for the natural key and then writes in a separate
// statement. Two identical submissions racing each other can both see no row:
// one insert wins and the other fails on the events_natural_key constraint,
// which surfaces as a conflict without the exists flag.
type ResultResolver struct {
	store ResultEventStore
	log   *zap.Logger
}

func NewResultResolver(store ResultEventStore, log *zap.Logger) *ResultResolver {
	return &ResultResolver{store: store, log: log.Named("results")}
}

func (r *ResultResolver) List(ctx context.Context) ([]models.ResultEvent, error) {
	events, err := r.store.ListResultEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Date = normalize.DisplayDate(events[i].Date)
	}
	return events, nil
}

func (r *ResultResolver) Delete(ctx context.Context, id int64) error {
	if err := requireID(id, "event"); err != nil {
		return err
	}
	ok, err := r.store.DeleteResultEvent(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("event not found")
	}
	r.log.Info("event deleted", zap.Int64("event_id", id))
	return nil
}

// SaveResult inserts the event, or overwrites the row holding the same
// (year, series, name) when in.Overwrite is set.
func (r *ResultResolver) SaveResult(ctx context.Context, in ResultInput) (*SaveOutcome, error) {
	row, err := in.toModel()
	if err != nil {
		return nil, err
	}

	existing, err := r.store.FindResultEvent(ctx, row.Year, row.Series, row.Name)
	if err != nil {
		return nil, err
	}

	out := &SaveOutcome{Message: msgSaved}
	switch {
	case existing != nil && !in.Overwrite:
		r.log.Debug("save-result conflict", zap.Int64("event_id", existing.ID))
		return nil, apperr.Conflict(msgExists, true)

	case existing != nil:
		row.ID = existing.ID
		ok, err := r.store.UpdateResultEvent(ctx, row)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Deleted between the lookup and the update.
			return nil, apperr.NotFound("event not found")
		}
		out.Message = msgOverwritten
		out.Overwritten = true

	default:
		if err := r.store.InsertResultEvent(ctx, row); err != nil {
			return nil, err
		}
	}

	saved, err := r.store.GetResultEvent(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	saved.Date = normalize.DisplayDate(saved.Date)
	out.Event = saved

	r.log.Info("event result saved",
		zap.Int64("event_id", saved.ID),
		zap.Int("year", saved.Year),
		zap.String("series", saved.Series),
		zap.String("name", saved.Name),
		zap.Bool("overwritten", out.Overwritten),
	)
	return out, nil
}

func (in ResultInput) toModel() (*models.ResultEvent, error) {
	if in.Year == nil || math.IsNaN(*in.Year) || math.IsInf(*in.Year, 0) ||
		*in.Year <= 0 || *in.Year != math.Trunc(*in.Year) || *in.Year > math.MaxInt32 {
		return nil, apperr.Validation("year must be a positive integer")
	}
	series := strings.TrimSpace(in.Series)
	name := strings.TrimSpace(in.Name)
	if series == "" || name == "" || strings.TrimSpace(in.Date) == "" {
		return nil, apperr.Validation("year, series, name, and date are required")
	}
	date, ok := normalize.Date(in.Date)
	if !ok {
		return nil, apperr.Validation("date must be a calendar date (YYYY-MM-DD)")
	}
	if in.Duration == nil || math.IsNaN(*in.Duration) || math.IsInf(*in.Duration, 0) || *in.Duration < 0 {
		return nil, apperr.Validation("duration must be a finite non-negative number")
	}

	return &models.ResultEvent{
		Year:          int(*in.Year),
		Series:        series,
		Name:          name,
		Date:          date,
		Organiser:     strings.TrimSpace(in.Organiser),
		DurationHours: *in.Duration,
	}, nil
}
