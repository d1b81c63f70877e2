package main

import (
	"errors"
	"net/http"
	"strconv"

	"eventhub/data/models"
	"eventhub/data/repository"
)

type categoryInput struct {
	Name        string `validate:"required,max=100" json:"name"`
	Description string `json:"description"`
}

// ListCategories returns all categories annotated with event counts.
func (app *application) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.Repo.ListCategories()
	if err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}
	app.SendSuccessJSON(w, http.StatusOK, categories, "categories")
}

func (app *application) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input categoryInput
	if err := app.ReadJSON(w, r, &input, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	category := models.Category{Name: input.Name, Description: input.Description}
	if _, err := app.Repo.Create(category); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusCreated, "/categories/", "Category created.")
}

func (app *application) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	category, err := app.Repo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("category not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	var input categoryInput
	if err := app.ReadJSON(w, r, &input, true); err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, err)
		return
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := app.Repo.Update(category); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusOK, "/categories/", "Category updated.")
}

// DeleteCategory removes a category; its events and their RSVPs go with it.
func (app *application) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.SendErrorJSON(w, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	category, err := app.Repo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			app.SendErrorJSON(w, http.StatusNotFound, errors.New("category not found"))
			return
		}
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	if err := app.Repo.Delete(category); err != nil {
		app.SendErrorJSON(w, http.StatusInternalServerError, err)
		return
	}

	app.RedirectWithMessage(w, http.StatusOK, "/categories/", "Category deleted.")
}
