package main

import (
	"fmt"
	"net/http"

	"github.com/hafizmfadli/go-vidly/internal/data"
)

// createMovieHandler for the "POST /v1/movies" endpoint.
func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	// anonymous struct to hold information that we expect to be in the HTTP request body.
	var input struct {
		Title       string           `json:"title"`
		ReleaseDate data.ReleaseDate `json:"releaseDate"`
		Popularity  *int32           `json:"popularity"`
		GenreIDs    []int64          `json:"genreIds"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.models.Movies.Save(&data.MovieInput{
		Title:       input.Title,
		ReleaseDate: input.ReleaseDate,
		Popularity:  input.Popularity,
		GenreIDs:    input.GenreIDs,
	}, 0)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	// Let the client know where it can find the newly created resource.
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"movie": movie}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showMovieHandler for the "GET /v1/movies/:id" endpoint.
func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Get(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"movie": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateMovieHandler for the "PUT /v1/movies/:id" endpoint. The form
// always submits every field, so an edit is a wholesale replacement of
// the editable fields. Rating totals are untouched.
func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input struct {
		Title       string           `json:"title"`
		ReleaseDate data.ReleaseDate `json:"releaseDate"`
		Popularity  *int32           `json:"popularity"`
		GenreIDs    []int64          `json:"genreIds"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.models.Movies.Save(&data.MovieInput{
		Title:       input.Title,
		ReleaseDate: input.ReleaseDate,
		Popularity:  input.Popularity,
		GenreIDs:    input.GenreIDs,
	}, id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"movie": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// takeEditSessionHandler for the "GET /v1/edit-session" endpoint. It
// returns the movie staged for editing and clears the staged ID, so a
// second read reports 404 Not Found. The form calls this once on load.
func (app *application) takeEditSessionHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := app.models.Movies.TakeStagedEdit()
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"movie": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
