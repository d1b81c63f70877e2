package main

import (
	"net/http"

	"eventhub/auth"
)

// Dashboard redirects to the requester's role dashboard. A user holding
// multiple roles resolves Admin first, then Organizer, then Participant.
func (app *application) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	switch {
	case auth.IsAdmin(identity):
		http.Redirect(w, r, "/dashboard/admin/", http.StatusSeeOther)
	case auth.IsOrganizer(identity):
		http.Redirect(w, r, "/dashboard/organizer/", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/dashboard/participant/", http.StatusSeeOther)
	}
}

func (app *application) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := app.Repo.AdminDashboard(app.today())
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, stats)
}

func (app *application) OrganizerDashboard(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	dash, err := app.Repo.OrganizerDashboard(identity.UserID, app.today())
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, dash)
}

func (app *application) ParticipantDashboard(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	upcoming, past, err := app.Repo.ParticipantEvents(identity.UserID, app.today())
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.SendSuccessJSON(w, http.StatusOK, map[string]interface{}{
		"upcoming_rsvps": upcoming,
		"past_rsvps":     past,
	})
}
