package repository

import (
	"fmt"
	"time"

	"eventhub/data/models"
)

// AdminDashboard aggregates global stats: total events, total RSVPs across
// all events, upcoming (date >= today) and past (date < today) counts, plus
// the full annotated event list ordered newest-first.
func (sr *SqlRepo) AdminDashboard(today time.Time) (models.DashboardStats, error) {
	var stats models.DashboardStats

	err := sr.DB.QueryRow(`SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE date >= $1),
		COUNT(*) FILTER (WHERE date < $1)
		FROM events`, today).
		Scan(&stats.TotalEvents, &stats.UpcomingCount, &stats.PastCount)
	if err != nil {
		return stats, fmt.Errorf("error counting events: %v", err)
	}

	if err := sr.DB.QueryRow("SELECT COUNT(*) FROM rsvps").Scan(&stats.TotalRSVPs); err != nil {
		return stats, fmt.Errorf("error counting rsvps: %v", err)
	}

	stats.Events, err = sr.QueryEvents(EventFilter{NewestFirst: true})
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// OrganizerDashboard aggregates the same stats scoped to one organizer's
// events, and additionally isolates events happening today. Upcoming here is
// strictly after today; today's events are listed separately.
func (sr *SqlRepo) OrganizerDashboard(organizerID int64, today time.Time) (models.OrganizerDashboard, error) {
	var dash models.OrganizerDashboard

	err := sr.DB.QueryRow(`SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE date > $2),
		COUNT(*) FILTER (WHERE date < $2)
		FROM events WHERE organizer_id = $1`, organizerID, today).
		Scan(&dash.TotalEvents, &dash.UpcomingCount, &dash.PastCount)
	if err != nil {
		return dash, fmt.Errorf("error counting organizer events: %v", err)
	}

	err = sr.DB.QueryRow(`SELECT COUNT(*) FROM rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE e.organizer_id = $1`, organizerID).
		Scan(&dash.TotalRSVPs)
	if err != nil {
		return dash, fmt.Errorf("error counting organizer rsvps: %v", err)
	}

	dash.Events, err = sr.QueryEvents(EventFilter{OrganizerID: organizerID, NewestFirst: true})
	if err != nil {
		return dash, err
	}

	dash.TodaysEvents, err = sr.QueryEvents(EventFilter{
		OrganizerID: organizerID,
		DateFrom:    today,
		DateTo:      today,
		NewestFirst: true,
	})
	if err != nil {
		return dash, err
	}

	return dash, nil
}

// ParticipantEvents splits the user's RSVP'd events into upcoming
// (date >= today, soonest first) and past (date < today, most recent first).
func (sr *SqlRepo) ParticipantEvents(userID int64, today time.Time) (upcoming, past []models.EventDetail, err error) {
	upcoming, err = sr.QueryEvents(EventFilter{RSVPUserID: userID, DateFrom: today})
	if err != nil {
		return nil, nil, err
	}

	past, err = sr.QueryEvents(EventFilter{
		RSVPUserID:  userID,
		DateTo:      today.AddDate(0, 0, -1),
		NewestFirst: true,
	})
	if err != nil {
		return nil, nil, err
	}

	return upcoming, past, nil
}
