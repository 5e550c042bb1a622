package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/padraicbc/rogainizer/normalize"
)

// StoredList is an ordered set of strings persisted as JSON text.
// Malformed column data scans as an empty list rather than failing the read.
type StoredList []string

// Value implements driver.Valuer.
func (l StoredList) Value() (driver.Value, error) {
	return normalize.EncodeList(l), nil
}

// Scan implements sql.Scanner.
func (l *StoredList) Scan(src any) error {
	*l = normalize.DecodeList(src)
	return nil
}

func (l StoredList) MarshalJSON() ([]byte, error) {
	return json.Marshal(normalize.List([]string(l)))
}
