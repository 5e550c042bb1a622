package models

import "github.com/uptrace/bun"

// Event is a scheduled rogaine with the courses and categories teams may enter.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	Name       string     `bun:"name,notnull" json:"name"`
	Date       string     `bun:"event_date,notnull,type:date" json:"date"`
	Location   string     `bun:"location,notnull" json:"location"`
	Courses    StoredList `bun:"courses,notnull,type:text" json:"courses"`
	Categories StoredList `bun:"categories,notnull,type:text" json:"categories"`
}
