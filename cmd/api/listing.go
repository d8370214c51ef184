package main

import (
	"net/http"

	"github.com/hafizmfadli/go-vidly/internal/data"
)

// listMoviesHandler for the "GET /v1/movies" endpoint. Each movie is
// returned as a display-ready listing row, with genre IDs resolved to
// names and the mean rating derived from the vote totals.
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.models.Movies.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	genres, err := app.models.Genres.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]data.MovieSummary, 0, len(movies))
	for _, movie := range movies {
		summaries = append(summaries, data.Summarize(movie, genres))
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"movies": summaries}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteMovieHandler for the "DELETE /v1/movies/:id" endpoint. Deleting
// an ID with no stored movie succeeds, so repeating a delete is safe.
func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Movies.Delete(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "movie successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// voteMovieHandler for the "POST /v1/movies/:id/vote" endpoint.
func (app *application) voteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input struct {
		Value int64 `json:"value"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.models.Movies.Vote(id, input.Value)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"movie": movie}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// stageEditHandler for the "POST /v1/movies/:id/edit-session" endpoint.
// It parks the movie ID for the form to collect with GET /v1/edit-session.
func (app *application) stageEditHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Movies.StageEdit(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "movie staged for editing"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
