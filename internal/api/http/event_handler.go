package http

import (
	"net/http"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"
)

// EventHandler serves public event discovery.
type EventHandler struct {
	eventSvc  service.EventService
	ratingSvc service.RatingService
}

func NewEventHandler(eventSvc service.EventService, ratingSvc service.RatingService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, ratingSvc: ratingSvc}
}

// Search handles GET /events
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sort, err := domain.ParseEventSort(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, err := queryInt(r, "from", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views, err := h.eventSvc.Search(r.Context(), service.SearchParams{
		Filter:   filter,
		Sort:     sort,
		From:     from,
		Size:     size,
		ClientIP: clientIP(r),
		URI:      r.URL.Path,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapEventViewsToResponse(views))
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.eventSvc.GetPublishedEvent(r.Context(), id, clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapEventViewToResponse(*view))
}

// GetRating handles GET /events/{id}/rating
func (h *EventHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rating, err := h.ratingSvc.EventRating(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RatingResponse{ID: id, Rating: rating})
}
