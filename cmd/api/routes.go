package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes assembles the router: one handler group per screen of the
// catalog (genres, movie form, listing) plus the operational endpoints.
func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	// Genre screen
	router.HandlerFunc(http.MethodGet, "/v1/genres", app.listGenresHandler)
	router.HandlerFunc(http.MethodPost, "/v1/genres", app.createGenreHandler)
	router.HandlerFunc(http.MethodPut, "/v1/genres/:id", app.updateGenreHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/genres/:id", app.deleteGenreHandler)

	// Movie form
	router.HandlerFunc(http.MethodPost, "/v1/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodGet, "/v1/movies/:id", app.showMovieHandler)
	router.HandlerFunc(http.MethodPut, "/v1/movies/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodGet, "/v1/edit-session", app.takeEditSessionHandler)

	// Listing screen
	router.HandlerFunc(http.MethodGet, "/v1/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/movies/:id", app.deleteMovieHandler)
	router.HandlerFunc(http.MethodPost, "/v1/movies/:id/vote", app.voteMovieHandler)
	router.HandlerFunc(http.MethodPost, "/v1/movies/:id/edit-session", app.stageEditHandler)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return app.recoverPanic(app.metrics(app.rateLimit(router)))
}
