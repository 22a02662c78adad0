package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers every public and user-scoped endpoint.
func RegisterRoutes(router *mux.Router, events *EventHandler, requests *RequestHandler, ratings *RatingHandler) {
	router.Use(RequestLogger)

	router.HandleFunc("/events", events.Search).Methods(http.MethodGet)
	router.HandleFunc("/events/{id:[0-9]+}", events.GetEvent).Methods(http.MethodGet)
	router.HandleFunc("/events/{id:[0-9]+}/rating", events.GetRating).Methods(http.MethodGet)

	users := router.PathPrefix("/users/{userId:[0-9]+}").Subrouter()
	users.HandleFunc("/requests", requests.Submit).Methods(http.MethodPost)
	users.HandleFunc("/requests", requests.ListMine).Methods(http.MethodGet)
	users.HandleFunc("/requests/{requestId:[0-9]+}/cancel", requests.Cancel).Methods(http.MethodPatch)
	users.HandleFunc("/events/{eventId:[0-9]+}/requests", requests.ListForEvent).Methods(http.MethodGet)
	users.HandleFunc("/events/{eventId:[0-9]+}/requests", requests.Resolve).Methods(http.MethodPatch)

	users.HandleFunc("/events/{eventId:[0-9]+}/like", ratings.Like()).Methods(http.MethodPut)
	users.HandleFunc("/events/{eventId:[0-9]+}/like", ratings.RemoveLike()).Methods(http.MethodDelete)
	users.HandleFunc("/events/{eventId:[0-9]+}/dislike", ratings.Dislike()).Methods(http.MethodPut)
	users.HandleFunc("/events/{eventId:[0-9]+}/dislike", ratings.RemoveDislike()).Methods(http.MethodDelete)
	users.HandleFunc("/rating", ratings.GetUserRating).Methods(http.MethodGet)
}

// NewRouter builds a router with all routes registered.
func NewRouter(events *EventHandler, requests *RequestHandler, ratings *RatingHandler) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, events, requests, ratings)
	return router
}
