package main

import (
	"net/http"

	"eventhub/auth"

	"github.com/rs/cors"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /{$}", app.Home)
	mux.HandleFunc("GET /no-permission/", app.NoPermission)
	mux.HandleFunc("GET /events/", app.ListEvents)
	mux.HandleFunc("GET /events/{id}/", app.EventDetail)
	mux.HandleFunc("GET /search/", app.SearchEvents)
	mux.HandleFunc("GET /category/{id}/", app.EventsByCategory)

	// Account lifecycle
	mux.HandleFunc("POST /signup/", app.Signup)
	mux.HandleFunc("POST /login/", app.Login)
	mux.HandleFunc("GET /activate/{userID}/{token}/", app.Activate)
	mux.HandleFunc("POST /logout/", app.RequireAuth(app.Logout))

	// Dashboards
	mux.HandleFunc("GET /dashboard/", app.RequireAuth(app.Dashboard))
	mux.HandleFunc("GET /dashboard/admin/", app.RequireRole(auth.IsAdmin, app.AdminDashboard))
	mux.HandleFunc("GET /dashboard/organizer/", app.RequireRole(auth.IsOrganizer, app.OrganizerDashboard))
	mux.HandleFunc("GET /dashboard/participant/", app.RequireRole(auth.IsParticipant, app.ParticipantDashboard))

	// Event management
	mux.HandleFunc("POST /events/add/{$}", app.RequireRole(auth.IsAdminOrOrganizer, app.CreateEvent))
	mux.HandleFunc("POST /events/{id}/edit/", app.RequireRole(auth.IsAdminOrOrganizer, app.UpdateEvent))
	mux.HandleFunc("POST /events/{id}/delete/", app.RequireRole(auth.IsAdminOrOrganizer, app.DeleteEvent))
	mux.HandleFunc("POST /events/{id}/rsvp/", app.RequireRole(auth.IsParticipant, app.RSVPEvent))

	// Category management
	mux.HandleFunc("GET /categories/", app.RequireRole(auth.IsAdminOrOrganizer, app.ListCategories))
	mux.HandleFunc("POST /categories/add/{$}", app.RequireRole(auth.IsAdminOrOrganizer, app.CreateCategory))
	mux.HandleFunc("POST /categories/{id}/edit/", app.RequireRole(auth.IsAdminOrOrganizer, app.UpdateCategory))
	mux.HandleFunc("POST /categories/{id}/delete/", app.RequireRole(auth.IsAdminOrOrganizer, app.DeleteCategory))

	// Admin-only user and group management
	mux.HandleFunc("GET /admin/users/", app.RequireRole(auth.IsAdmin, app.ListUsers))
	mux.HandleFunc("GET /admin/groups/", app.RequireRole(auth.IsAdmin, app.ListGroups))
	mux.HandleFunc("POST /admin/create-group/", app.RequireRole(auth.IsAdmin, app.CreateGroup))
	mux.HandleFunc("POST /admin/assign-role/{userID}/", app.RequireRole(auth.IsAdmin, app.AssignRole))

	return cors.New(cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	}).Handler(mux)
}
