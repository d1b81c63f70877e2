package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"eventhub/auth"
	"eventhub/data/models"
	"eventhub/data/repository"

	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Username  string `validate:"required,min=3,max=150" json:"username"`
	Email     string `validate:"required,email" json:"email"`
	Password  string `validate:"required,min=6,max=120" json:"password"`
	Password2 string `validate:"required" json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required" json:"password"`
}

// Signup creates an inactive account in the Participant group and fires the
// activation mail. Mail failure does not undo the already-committed signup.
func (app *application) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := app.ReadJSON(w, r, &req, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	if req.Password != req.Password2 {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("Passwords do not match"))
		return
	}

	taken, err := app.Repo.UsernameTaken(req.Username)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	if taken {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("Username already taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  false,
	}

	id, err := app.Repo.Create(user)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	user.ID = id

	// New accounts default to the Participant role.
	if err := app.Repo.AssignRole(id, string(auth.RoleParticipant)); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	// Post-commit hook: activation mail, fire-and-forget.
	token, err := app.Tokens.Issue(user)
	if err == nil {
		app.Notifier.UserCreated(user, token)
	}

	app.RedirectWithMessage(w, http.StatusCreated, loginPath,
		"Account created. Check your email to activate.")
}

// Activate consumes an activation token and flips the account active.
func (app *application) Activate(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	user, err := app.Repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("user not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	if !app.Tokens.Validate(user, r.PathValue("token")) {
		app.SendErrorJSON(w, http.StatusBadRequest,
			errors.New("Activation link is invalid or expired."))
		return
	}

	if err := app.Repo.ActivateUser(userID); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusOK, loginPath,
		"Account activated. You can now log in.")
}

// Login authenticates an active account and starts a session.
func (app *application) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := app.ReadJSON(w, r, &req, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	user, err := app.Repo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusBadRequest, errors.New("Invalid username or password."))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("Invalid username or password."))
		return
	}

	if !user.IsActive {
		app.SendErrorJSON(w, http.StatusForbidden,
			errors.New("Account not activated. Check your email."))
		return
	}

	token, err := app.Sessions.Create(user.ID)
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	http.SetCookie(w, auth.Cookie(token))

	app.RedirectWithMessage(w, http.StatusOK, "/dashboard/",
		fmt.Sprintf("Welcome back, %s.", user.Username))
}

// Logout ends the session and expires the cookie.
func (app *application) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r); token != "" {
		app.Sessions.Delete(token)
	}
	http.SetCookie(w, auth.Cookie(""))

	app.RedirectWithMessage(w, http.StatusOK, loginPath, "Logged out successfully.")
}
