package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

// CreateRSVP inserts an RSVP for (userID, eventID) as an atomic
// check-and-insert. The unique constraint on the pair is the synchronization
// point: two near-simultaneous requests cannot both insert. It returns false
// with a nil error when the user had already RSVP'd.
func (sr *SqlRepo) CreateRSVP(userID, eventID int64) (bool, error) {
	var id int64
	err := sr.DB.QueryRow(`INSERT INTO rsvps (user_id, event_id) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT rsvps_user_event_key DO NOTHING
		RETURNING id`, userID, eventID).Scan(&id)

	if err == nil {
		return true, nil
	}

	// ON CONFLICT DO NOTHING yields no row on a duplicate.
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return false, nil
	}

	return false, fmt.Errorf("error creating rsvp: %v", err)
}
