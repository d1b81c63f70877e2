package models

import "time"

// RSVP links one user to one event, unique per pair. Rows are created once
// and only ever removed by cascading deletes.
type RSVP struct {
	ID        int64     `json:"id" db:"id" readOnly:"true"`
	UserID    int64     `validate:"required" json:"user_id" db:"user_id"`
	EventID   int64     `validate:"required" json:"event_id" db:"event_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at" readOnly:"true"`
}

func (RSVP) TableName() string {
	return "rsvps"
}

func (r RSVP) GetID() int64 {
	return r.ID
}

func (r RSVP) EmptySlice() interface{} {
	return &[]RSVP{}
}
