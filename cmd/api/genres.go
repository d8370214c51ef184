package main

import (
	"fmt"
	"net/http"
)

// listGenresHandler for the "GET /v1/genres" endpoint. Genres are
// returned in insertion order, as stored.
func (app *application) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Genres.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"genres": genres}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createGenreHandler for the "POST /v1/genres" endpoint.
func (app *application) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genre, err := app.models.Genres.Save(input.Name, 0)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/genres/%d", genre.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"genre": genre}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateGenreHandler for the "PUT /v1/genres/:id" endpoint.
func (app *application) updateGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input struct {
		Name string `json:"name"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genre, err := app.models.Genres.Save(input.Name, id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"genre": genre}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteGenreHandler for the "DELETE /v1/genres/:id" endpoint. Deleting
// an ID with no stored genre succeeds, so repeating a delete is safe.
func (app *application) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Genres.Delete(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "genre successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
