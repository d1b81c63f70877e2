package models

import "time"

// Read models returned by the repository's listing and dashboard queries.
// They are scanned explicitly rather than through the Model machinery because
// their columns span multiple tables.

// EventDetail is an event annotated with its category name, organizer
// username and RSVP count.
type EventDetail struct {
	Event
	CategoryName  string `json:"category_name"`
	OrganizerName string `json:"organizer_name"`
	RSVPCount     int64  `json:"rsvp_count"`
}

// Attendee is one RSVP'd user on an event's participant list.
type Attendee struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	RSVPDate time.Time `json:"rsvp_date"`
}

// CategoryInfo is a category annotated with its event count.
type CategoryInfo struct {
	Category
	EventCount int64 `json:"event_count"`
}

// UserAccount is a user annotated with their group names, for the admin
// user list.
type UserAccount struct {
	User
	Roles []string `json:"roles"`
}

// GroupInfo is a group annotated with its member count.
type GroupInfo struct {
	Group
	UserCount int64 `json:"user_count"`
}

// DashboardStats drives the admin and organizer dashboards.
type DashboardStats struct {
	TotalEvents   int64         `json:"total_events"`
	TotalRSVPs    int64         `json:"total_rsvps"`
	UpcomingCount int64         `json:"upcoming_events"`
	PastCount     int64         `json:"past_events"`
	Events        []EventDetail `json:"events"`
}

// OrganizerDashboard adds the organizer's same-day events to the shared
// aggregates.
type OrganizerDashboard struct {
	DashboardStats
	TodaysEvents []EventDetail `json:"todays_events"`
}
