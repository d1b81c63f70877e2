package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"eventhub/auth"
	"eventhub/config"
	"eventhub/data/models"
	"eventhub/data/repository"
	"eventhub/mailer"
)

// memRepo is an in-memory DBRepo used by handler tests. It mirrors the
// database cascades so ownership and cascade assertions hold without a
// running Postgres.
type memRepo struct {
	mu         sync.Mutex
	users      map[int64]models.User
	roles      map[int64][]string
	groups     map[string]int64
	categories map[int64]models.Category
	events     map[int64]models.Event
	rsvps      map[[2]int64]time.Time
	nextID     int64

	// lastFilter records what the handlers asked for.
	lastFilter repository.EventFilter
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:      map[int64]models.User{},
		roles:      map[int64][]string{},
		groups:     map[string]int64{"Admin": 1, "Organizer": 2, "Participant": 3},
		categories: map[int64]models.Category{},
		events:     map[int64]models.Event{},
		rsvps:      map[[2]int64]time.Time{},
		nextID:     10,
	}
}

func (m *memRepo) Connection() *sql.DB        { return nil }
func (m *memRepo) RunMigrations(string) error { return nil }

func (m *memRepo) Create(model models.Model) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID

	switch v := model.(type) {
	case models.User:
		v.ID = id
		v.CreatedAt = time.Now()
		m.users[id] = v
	case models.Event:
		v.ID = id
		v.CreatedAt = time.Now()
		m.events[id] = v
	case models.Category:
		v.ID = id
		m.categories[id] = v
	default:
		return 0, fmt.Errorf("unsupported model %T", model)
	}
	return id, nil
}

func (m *memRepo) Update(model models.Model) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch v := model.(type) {
	case models.User:
		m.users[v.ID] = v
	case models.Event:
		m.events[v.ID] = v
	case models.Category:
		m.categories[v.ID] = v
	default:
		return fmt.Errorf("unsupported model %T", model)
	}
	return nil
}

func (m *memRepo) Delete(model models.Model) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch v := model.(type) {
	case models.Category:
		delete(m.categories, v.ID)
		for id, e := range m.events {
			if e.CategoryID == v.ID {
				m.deleteEventLocked(id)
			}
		}
	case models.Event:
		m.deleteEventLocked(v.ID)
	case models.User:
		delete(m.users, v.ID)
		for id, e := range m.events {
			if e.OrganizerID == v.ID {
				m.deleteEventLocked(id)
			}
		}
	default:
		return fmt.Errorf("unsupported model %T", model)
	}
	return nil
}

func (m *memRepo) deleteEventLocked(id int64) {
	delete(m.events, id)
	for key := range m.rsvps {
		if key[1] == id {
			delete(m.rsvps, key)
		}
	}
}

func (m *memRepo) GetModelByID(model models.Model, id int64) (models.Model, error) {
	return nil, repository.ErrNotFound
}

func (m *memRepo) GetUserByID(id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) GetUserByUsername(username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (m *memRepo) UsernameTaken(username string) (bool, error) {
	_, err := m.GetUserByUsername(username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memRepo) ActivateUser(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsActive = true
	m.users[id] = u
	return nil
}

func (m *memRepo) ListUsers() ([]models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var accounts []models.UserAccount
	for _, u := range m.users {
		accounts = append(accounts, models.UserAccount{User: u, Roles: m.roles[u.ID]})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *memRepo) GetRoles(userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roles[userID], nil
}

func (m *memRepo) AssignRole(userID int64, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[role]; !ok {
		m.nextID++
		m.groups[role] = m.nextID
	}
	m.roles[userID] = []string{role}
	return nil
}

func (m *memRepo) EnsureGroup(name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.groups[name]; ok {
		return id, nil
	}
	m.nextID++
	m.groups[name] = m.nextID
	return m.nextID, nil
}

func (m *memRepo) ListGroups() ([]models.GroupInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var groups []models.GroupInfo
	for name, id := range m.groups {
		info := models.GroupInfo{Group: models.Group{ID: id, Name: name}}
		for _, roles := range m.roles {
			for _, r := range roles {
				if r == name {
					info.UserCount++
				}
			}
		}
		groups = append(groups, info)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (m *memRepo) GetCategoryByID(id int64) (models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return models.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *memRepo) ListCategories() ([]models.CategoryInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var categories []models.CategoryInfo
	for _, c := range m.categories {
		info := models.CategoryInfo{Category: c}
		for _, e := range m.events {
			if e.CategoryID == c.ID {
				info.EventCount++
			}
		}
		categories = append(categories, info)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *memRepo) GetEventByID(id int64) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return models.Event{}, repository.ErrNotFound
	}
	return e, nil
}

func (m *memRepo) detailLocked(e models.Event) models.EventDetail {
	ed := models.EventDetail{Event: e}
	ed.CategoryName = m.categories[e.CategoryID].Name
	ed.OrganizerName = m.users[e.OrganizerID].Username
	for key := range m.rsvps {
		if key[1] == e.ID {
			ed.RSVPCount++
		}
	}
	return ed
}

func (m *memRepo) GetEventDetail(id int64) (models.EventDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return models.EventDetail{}, repository.ErrNotFound
	}
	return m.detailLocked(e), nil
}

func (m *memRepo) QueryEvents(f repository.EventFilter) ([]models.EventDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFilter = f

	var details []models.EventDetail
	for _, e := range m.events {
		if f.CategoryID != 0 && e.CategoryID != f.CategoryID {
			continue
		}
		if f.OrganizerID != 0 && e.OrganizerID != f.OrganizerID {
			continue
		}
		if f.RSVPUserID != 0 {
			if _, ok := m.rsvps[[2]int64{f.RSVPUserID, e.ID}]; !ok {
				continue
			}
		}
		if !f.DateFrom.IsZero() && e.Date.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && e.Date.After(f.DateTo) {
			continue
		}
		details = append(details, m.detailLocked(e))
	}

	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if f.NewestFirst {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.ID < b.ID
	})

	if f.Limit > 0 && len(details) > f.Limit {
		details = details[:f.Limit]
	}
	return details, nil
}

func (m *memRepo) EventParticipants(eventID int64) ([]models.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var attendees []models.Attendee
	for key, when := range m.rsvps {
		if key[1] == eventID {
			attendees = append(attendees, models.Attendee{
				UserID:   key[0],
				Username: m.users[key[0]].Username,
				RSVPDate: when,
			})
		}
	}
	sort.Slice(attendees, func(i, j int) bool { return attendees[i].UserID < attendees[j].UserID })
	return attendees, nil
}

func (m *memRepo) CreateRSVP(userID, eventID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := [2]int64{userID, eventID}
	if _, ok := m.rsvps[key]; ok {
		return false, nil
	}
	m.rsvps[key] = time.Now()
	return true, nil
}

func (m *memRepo) AdminDashboard(today time.Time) (models.DashboardStats, error) {
	m.mu.Lock()
	stats := models.DashboardStats{TotalRSVPs: int64(len(m.rsvps))}
	for _, e := range m.events {
		stats.TotalEvents++
		if e.Date.Before(today) {
			stats.PastCount++
		} else {
			stats.UpcomingCount++
		}
	}
	m.mu.Unlock()

	events, err := m.QueryEvents(repository.EventFilter{NewestFirst: true})
	if err != nil {
		return stats, err
	}
	stats.Events = events
	return stats, nil
}

func (m *memRepo) OrganizerDashboard(organizerID int64, today time.Time) (models.OrganizerDashboard, error) {
	var dash models.OrganizerDashboard

	m.mu.Lock()
	for _, e := range m.events {
		if e.OrganizerID != organizerID {
			continue
		}
		dash.TotalEvents++
		switch {
		case e.Date.Before(today):
			dash.PastCount++
		case e.Date.After(today):
			dash.UpcomingCount++
		}
	}
	for key := range m.rsvps {
		if e, ok := m.events[key[1]]; ok && e.OrganizerID == organizerID {
			dash.TotalRSVPs++
		}
	}
	m.mu.Unlock()

	events, err := m.QueryEvents(repository.EventFilter{OrganizerID: organizerID, NewestFirst: true})
	if err != nil {
		return dash, err
	}
	dash.Events = events

	todays, err := m.QueryEvents(repository.EventFilter{
		OrganizerID: organizerID, DateFrom: today, DateTo: today, NewestFirst: true,
	})
	if err != nil {
		return dash, err
	}
	dash.TodaysEvents = todays
	return dash, nil
}

func (m *memRepo) ParticipantEvents(userID int64, today time.Time) ([]models.EventDetail, []models.EventDetail, error) {
	upcoming, err := m.QueryEvents(repository.EventFilter{RSVPUserID: userID, DateFrom: today})
	if err != nil {
		return nil, nil, err
	}
	past, err := m.QueryEvents(repository.EventFilter{
		RSVPUserID: userID, DateTo: today.AddDate(0, 0, -1), NewestFirst: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return upcoming, past, nil
}

// recordingMailer captures dispatched mail for assertions.
type recordedMail struct {
	To      string
	Subject string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []recordedMail
	err  error
}

func (r *recordingMailer) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, recordedMail{To: to, Subject: subject})
	return nil
}

func (r *recordingMailer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// testToday pins "today" for every handler test.
var testToday = time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

func newTestApp(repo repository.DBRepo) (*application, *recordingMailer) {
	rec := &recordingMailer{}
	app := &application{
		Config:   config.Config{FrontendURL: "http://localhost:8080"},
		Repo:     repo,
		Sessions: auth.NewSessionStore(),
		Tokens:   auth.NewTokenSource("test-secret"),
		Notifier: &mailer.Notifier{Mailer: rec, FrontendURL: "http://localhost:8080"},
		now:      func() time.Time { return testToday.Add(12 * time.Hour) },
	}
	return app, rec
}

// seedUser creates an active user with the given role directly in the repo.
func seedUser(repo *memRepo, username, role string) models.User {
	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		IsActive: true,
	}
	id, _ := repo.Create(u)
	u.ID = id
	if role != "" {
		repo.AssignRole(id, role)
	}
	repo.mu.Lock()
	m := repo.users[id]
	repo.mu.Unlock()
	return m
}

func seedSuperuser(repo *memRepo, username string) models.User {
	u := seedUser(repo, username, "")
	repo.mu.Lock()
	u.IsSuperuser = true
	repo.users[u.ID] = u
	repo.mu.Unlock()
	return u
}

func seedCategory(repo *memRepo, name string) int64 {
	id, _ := repo.Create(models.Category{Name: name})
	return id
}

func seedEvent(repo *memRepo, name string, date time.Time, categoryID, organizerID int64) int64 {
	id, _ := repo.Create(models.Event{
		Name:        name,
		Description: "seeded",
		Date:        date,
		Time:        "18:30",
		Location:    "Main Hall",
		Image:       models.DefaultEventImage,
		CategoryID:  categoryID,
		OrganizerID: organizerID,
	})
	return id
}

// doRequest runs a request through the full route table, optionally
// authenticated as the given user.
func doRequest(app *application, method, target, body string, as *models.User) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if as != nil {
		token, _ := app.Sessions.Create(as.ID)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}

	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}
