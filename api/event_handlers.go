package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"eventhub/auth"
	"eventhub/data/models"
	"eventhub/data/repository"
)

const dateLayout = "2006-01-02"

type eventInput struct {
	Name        string `validate:"required,max=200" json:"name"`
	Description string `validate:"required" json:"description"`
	Date        string `validate:"required,datetime=2006-01-02" json:"date"`
	Time        string `validate:"required,datetime=15:04" json:"time"`
	Location    string `validate:"required,max=200" json:"location"`
	Image       string `json:"image"`
	CategoryID  int64  `validate:"required" json:"category_id"`
	OrganizerID int64  `json:"organizer_id"`
}

// Home lists the next upcoming events along with the requester's role flags.
func (app *application) Home(w http.ResponseWriter, r *http.Request) {
	events, err := app.Repo.QueryEvents(repository.EventFilter{
		DateFrom: app.today(),
		Limit:    5,
	})
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	identity := app.identityFromRequest(r)
	app.SendSuccessJSON(w, http.StatusOK, map[string]interface{}{
		"events":         events,
		"authenticated":  identity.Authenticated(),
		"is_admin":       auth.IsAdmin(identity),
		"is_organizer":   auth.IsOrganizer(identity),
		"is_participant": auth.IsParticipant(identity),
	})
}

// NoPermission is the fixed denial page authorization failures redirect to.
func (app *application) NoPermission(w http.ResponseWriter, r *http.Request) {
	app.SendErrorJSON(w, http.StatusForbidden,
		errors.New("You do not have permission to perform this action."))
}

// ListEvents is the public listing with search and filters: q matches name or
// location, category filters exactly, start+end bound the date range when
// both are given. Filters AND together; an absent filter is a no-op.
func (app *application) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}
	app.sendEventListing(w, filter)
}

// SearchEvents serves /search/?q= with the same semantics as the listing.
func (app *application) SearchEvents(w http.ResponseWriter, r *http.Request) {
	app.sendEventListing(w, repository.EventFilter{Search: r.URL.Query().Get("q")})
}

// EventsByCategory serves /category/{id}/ as a pre-filtered listing.
func (app *application) EventsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	if _, err := app.Repo.GetCategoryByID(categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("category not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.sendEventListing(w, repository.EventFilter{CategoryID: categoryID})
}

func (app *application) sendEventListing(w http.ResponseWriter, filter repository.EventFilter) {
	events, err := app.Repo.QueryEvents(filter)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	categories, err := app.Repo.ListCategories()
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.SendSuccessJSON(w, http.StatusOK, map[string]interface{}{
		"events":     events,
		"categories": categories,
	})
}

func filterFromQuery(r *http.Request) (repository.EventFilter, error) {
	q := r.URL.Query()
	filter := repository.EventFilter{Search: q.Get("q")}

	if raw := q.Get("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errors.New("category must be a number")
		}
		filter.CategoryID = categoryID
	}

	// The date range only applies when both bounds are present.
	start, end := q.Get("start"), q.Get("end")
	if start != "" && end != "" {
		from, err := time.Parse(dateLayout, start)
		if err != nil {
			return filter, errors.New("start must be formatted YYYY-MM-DD")
		}
		to, err := time.Parse(dateLayout, end)
		if err != nil {
			return filter, errors.New("end must be formatted YYYY-MM-DD")
		}
		filter.DateFrom, filter.DateTo = from, to
	}

	return filter, nil
}

// EventDetail returns one event with its annotations and participant list.
func (app *application) EventDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	event, err := app.Repo.GetEventDetail(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("event not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	participants, err := app.Repo.EventParticipants(id)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.SendSuccessJSON(w, http.StatusOK, map[string]interface{}{
		"event":        event,
		"participants": participants,
	})
}

// CreateEvent creates an event for an admin or organizer. An organizer is
// always recorded as the organizer of the event they create, regardless of
// the submitted value; an admin's submitted organizer is honored, defaulting
// to the admin themselves.
func (app *application) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input eventInput
	if err := app.ReadJSON(w, r, &input, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	identity := identityFromContext(r.Context())

	event, err := app.eventFromInput(input, identity, models.Event{})
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	id, err := app.Repo.Create(event)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusCreated,
		fmt.Sprintf("/events/%d/", id), "Event created successfully.")
}

// UpdateEvent edits an event. Admins may edit any event; organizers only
// their own, and the organizer field is re-locked to them on save.
func (app *application) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	existing, err := app.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("event not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	identity := identityFromContext(r.Context())
	if !auth.IsAdmin(identity) && existing.OrganizerID != identity.UserID {
		http.Redirect(w, r, noPermissionPath, http.StatusSeeOther)
		return
	}

	var input eventInput
	if err := app.ReadJSON(w, r, &input, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	event, err := app.eventFromInput(input, identity, existing)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	if err := app.Repo.Update(event); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusOK,
		fmt.Sprintf("/events/%d/", id), "Event updated successfully.")
}

// DeleteEvent removes an event. Ownership rules match UpdateEvent; deletion
// cascades to the event's RSVPs.
func (app *application) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	event, err := app.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("event not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	identity := identityFromContext(r.Context())
	if !auth.IsAdmin(identity) && event.OrganizerID != identity.UserID {
		http.Redirect(w, r, noPermissionPath, http.StatusSeeOther)
		return
	}

	if err := app.Repo.Delete(event); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusOK, "/events/", "Event deleted successfully.")
}

// RSVPEvent transitions a participant to rsvp'd on an event. The transition
// is idempotent: a repeat attempt reports "already RSVP'd" and fires no
// second confirmation mail.
func (app *application) RSVPEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	event, err := app.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("event not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	identity := identityFromContext(r.Context())

	created, err := app.Repo.CreateRSVP(identity.UserID, id)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	detailPath := fmt.Sprintf("/events/%d/", id)
	if !created {
		app.RedirectWithMessage(w, http.StatusOK, detailPath,
			"You already RSVP'd to this event.")
		return
	}

	// Post-commit hook: confirmation mail only on the first transition.
	if user, err := app.Repo.GetUserByID(identity.UserID); err == nil {
		app.Notifier.RSVPCreated(user, event)
	}

	app.RedirectWithMessage(w, http.StatusCreated, detailPath,
		"RSVP successful! A confirmation email has been sent.")
}

// eventFromInput assembles the Event to persist, applying the image default
// and the organizer rules. The existing event carries the identity fields on
// update; pass the zero Event on create.
func (app *application) eventFromInput(input eventInput, identity auth.Identity, existing models.Event) (models.Event, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return models.Event{}, errors.New("date must be formatted YYYY-MM-DD")
	}

	if _, err := app.Repo.GetCategoryByID(input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Event{}, errors.New("category does not exist")
		}
		return models.Event{}, err
	}

	image := input.Image
	if image == "" {
		image = models.DefaultEventImage
	}

	event := models.Event{
		ID:          existing.ID,
		Name:        input.Name,
		Description: input.Description,
		Date:        date,
		Time:        input.Time,
		Location:    input.Location,
		Image:       image,
		CategoryID:  input.CategoryID,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   app.now(),
	}

	if auth.IsAdmin(identity) {
		event.OrganizerID = input.OrganizerID
		if event.OrganizerID == 0 {
			event.OrganizerID = existing.OrganizerID
		}
		if event.OrganizerID == 0 {
			event.OrganizerID = identity.UserID
		}
	} else {
		// Organizers cannot hand their events to someone else.
		event.OrganizerID = identity.UserID
	}

	return event, nil
}
