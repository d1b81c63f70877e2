package models

import "time"

// DefaultEventImage is substituted when an event is created without an image.
const DefaultEventImage = "events_assets/default_img.jpg"

// Event belongs to one category and one organizer; both foreign keys cascade
// on delete. Time is stored as a zero-padded "HH:MM" string so that
// lexicographic ordering matches chronological ordering.
type Event struct {
	ID          int64     `json:"id" db:"id" readOnly:"true"`
	Name        string    `validate:"required,max=200" json:"name" db:"name"`
	Description string    `validate:"required" json:"description" db:"description"`
	Date        time.Time `validate:"required" json:"date" db:"date"`
	Time        string    `validate:"required" json:"time" db:"time"`
	Location    string    `validate:"required,max=200" json:"location" db:"location"`
	Image       string    `json:"image" db:"image"`
	CategoryID  int64     `validate:"required" json:"category_id" db:"category_id"`
	OrganizerID int64     `validate:"required" json:"organizer_id" db:"organizer_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" readOnly:"true"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) GetID() int64 {
	return e.ID
}

func (e Event) EmptySlice() interface{} {
	return &[]Event{}
}
