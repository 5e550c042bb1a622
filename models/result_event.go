package models

import "github.com/uptrace/bun"

// ResultEvent is the scoring-variant event row, unique on (year, series, name).
// It shares the events table with Event; a deployment uses one or the other.
type ResultEvent struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID            int64   `bun:"id,pk,autoincrement" json:"id"`
	Year          int     `bun:"year,notnull,unique:events_natural_key" json:"year"`
	Series        string  `bun:"series,notnull,unique:events_natural_key" json:"series"`
	Name          string  `bun:"name,notnull,unique:events_natural_key" json:"name"`
	Date          string  `bun:"event_date,notnull,type:date" json:"date"`
	Organiser     string  `bun:"organiser,notnull" json:"organiser"`
	DurationHours float64 `bun:"duration_hours,notnull,type:double precision" json:"durationHours"`
}
