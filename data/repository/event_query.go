package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/data/models"
)

// EventFilter narrows an annotated event listing. Every field is optional;
// zero values are no-ops and set fields AND together.
type EventFilter struct {
	// Search matches name OR location, case-insensitive substring.
	Search string
	// CategoryID filters on the exact category.
	CategoryID int64
	// OrganizerID scopes the listing to one organizer's events.
	OrganizerID int64
	// RSVPUserID scopes the listing to events the given user has RSVP'd to.
	RSVPUserID int64
	// DateFrom / DateTo bound the event date, inclusive.
	DateFrom time.Time
	DateTo   time.Time
	// NewestFirst orders by (date, time, id) descending instead of ascending.
	NewestFirst bool
	// Limit caps the result set when positive.
	Limit int
}

const eventDetailColumns = `e.id, e.name, e.description, e.date, e.time, e.location, e.image,
	e.category_id, e.organizer_id, e.created_at, e.updated_at,
	c.name, u.username, COUNT(r.id)`

const eventDetailJoins = `FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.organizer_id
	LEFT JOIN rsvps r ON r.event_id = e.id`

// QueryEvents returns events annotated with category name, organizer name and
// RSVP count, filtered per f. Ties on identical (date, time) break on id, so
// ordering is stable across calls.
func (sr *SqlRepo) QueryEvents(f EventFilter) ([]models.EventDetail, error) {
	where, vals := buildEventFilterClauses(f)

	order := "ASC"
	if f.NewestFirst {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s %s %s GROUP BY e.id, c.name, u.username
		ORDER BY e.date %s, e.time %s, e.id %s`,
		eventDetailColumns, eventDetailJoins, where, order, order, order)

	if f.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT $%d", query, len(vals)+1)
		vals = append(vals, f.Limit)
	}

	rows, err := sr.DB.Query(query, vals...)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %v", err)
	}
	defer rows.Close()

	return scanEventDetails(rows)
}

// GetEventDetail returns one event with its annotations, or ErrNotFound.
func (sr *SqlRepo) GetEventDetail(id int64) (models.EventDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.id = $1 GROUP BY e.id, c.name, u.username`,
		eventDetailColumns, eventDetailJoins)

	row := sr.DB.QueryRow(query, id)
	ed, err := scanEventDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EventDetail{}, ErrNotFound
		}
		return models.EventDetail{}, fmt.Errorf("error querying event %d: %v", id, err)
	}
	return ed, nil
}

func (sr *SqlRepo) GetEventByID(id int64) (models.Event, error) {
	model, err := sr.GetModelByID(&models.Event{}, id)
	if err != nil {
		return models.Event{}, err
	}

	event, ok := model.(*models.Event)
	if !ok {
		return models.Event{}, fmt.Errorf("type assertion to Event failed")
	}

	return *event, nil
}

// EventParticipants lists the users RSVP'd to an event, oldest RSVP first.
func (sr *SqlRepo) EventParticipants(eventID int64) ([]models.Attendee, error) {
	query := `SELECT u.id, u.username, r.created_at
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at, r.id`

	rows, err := sr.DB.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error querying participants: %v", err)
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var a models.Attendee
		if err := rows.Scan(&a.UserID, &a.Username, &a.RSVPDate); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

// buildEventFilterClauses assembles the parameterized WHERE clause for an
// EventFilter. It returns the clause (empty string when no filter is set) and
// the values to pass alongside the query.
func buildEventFilterClauses(f EventFilter) (string, []interface{}) {
	parts := []string{}
	vals := []interface{}{}
	ph := 1

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		parts = append(parts, fmt.Sprintf("(e.name ILIKE $%d OR e.location ILIKE $%d)", ph, ph+1))
		vals = append(vals, pattern, pattern)
		ph += 2
	}
	if f.CategoryID != 0 {
		parts = append(parts, fmt.Sprintf("e.category_id = $%d", ph))
		vals = append(vals, f.CategoryID)
		ph++
	}
	if f.OrganizerID != 0 {
		parts = append(parts, fmt.Sprintf("e.organizer_id = $%d", ph))
		vals = append(vals, f.OrganizerID)
		ph++
	}
	if f.RSVPUserID != 0 {
		parts = append(parts, fmt.Sprintf("e.id IN (SELECT event_id FROM rsvps WHERE user_id = $%d)", ph))
		vals = append(vals, f.RSVPUserID)
		ph++
	}
	if !f.DateFrom.IsZero() {
		parts = append(parts, fmt.Sprintf("e.date >= $%d", ph))
		vals = append(vals, f.DateFrom)
		ph++
	}
	if !f.DateTo.IsZero() {
		parts = append(parts, fmt.Sprintf("e.date <= $%d", ph))
		vals = append(vals, f.DateTo)
		ph++
	}

	if len(parts) == 0 {
		return "", vals
	}
	return "WHERE " + strings.Join(parts, " AND "), vals
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEventDetail(r rowScanner) (models.EventDetail, error) {
	var ed models.EventDetail
	err := r.Scan(
		&ed.ID, &ed.Name, &ed.Description, &ed.Date, &ed.Time, &ed.Location,
		&ed.Image, &ed.CategoryID, &ed.OrganizerID, &ed.CreatedAt, &ed.UpdatedAt,
		&ed.CategoryName, &ed.OrganizerName, &ed.RSVPCount,
	)
	return ed, err
}

func scanEventDetails(rows *sql.Rows) ([]models.EventDetail, error) {
	details := []models.EventDetail{}
	for rows.Next() {
		ed, err := scanEventDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, ed)
	}
	return details, rows.Err()
}
