package models

import "github.com/uptrace/bun"

// Team is an entry in one event on one course and category.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	EventID     int64   `bun:"event_id,notnull" json:"eventId"`
	Name        string  `bun:"name,notnull" json:"name"`
	Competitors string  `bun:"competitors,notnull" json:"competitors"`
	Course      string  `bun:"course,notnull" json:"course"`
	Category    string  `bun:"category,notnull" json:"category"`
	Score       float64 `bun:"score,notnull,default:0,type:double precision" json:"score"`

	Event *Event `bun:"rel:belongs-to,join:event_id=id" json:"-"`
}
