package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"eventhub/auth"
	"eventhub/data/repository"
)

type createGroupRequest struct {
	Name string `validate:"required,max=150" json:"name"`
}

type assignRoleRequest struct {
	Role string `validate:"required" json:"role"`
}

func (app *application) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.Repo.ListUsers()
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, users, "users")
}

func (app *application) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := app.Repo.ListGroups()
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, groups, "groups")
}

func (app *application) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := app.ReadJSON(w, r, &req, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	if _, err := app.Repo.EnsureGroup(req.Name); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusCreated, "/admin/groups/",
		fmt.Sprintf("Group %q created.", req.Name))
}

// AssignRole replaces the target user's group memberships with the single
// named role. Only roles from the closed set are accepted.
func (app *application) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var req assignRoleRequest
	if err := app.ReadJSON(w, r, &req, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
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

	if err := app.Repo.AssignRole(userID, string(role)); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusOK, "/admin/users/",
		fmt.Sprintf("%s is now assigned to %s.", user.Username, role))
}
