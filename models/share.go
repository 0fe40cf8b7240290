package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ShareData is the snapshot behind a public share link. It lives in the
// TTL cache, not the database; once stored it is never mutated.
type ShareData struct {
	Field          Field         `json:"field"`
	Question       string        `json:"question"`
	WordCount      int           `json:"wordCount"`
	InstructorType string        `json:"instructorType"`
	Outline        ReportOutline `json:"outline"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Value implements driver.Valuer for JSONB
func (s ShareData) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *ShareData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// SharedReport is a persisted share snapshot used for the public gallery
type SharedReport struct {
	ID        uuid.UUID `json:"id"`
	Content   ShareData `json:"content"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicReport is the gallery listing entry derived from a shared report
type PublicReport struct {
	ID        uuid.UUID `json:"id"`
	Field     Field     `json:"field"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}
