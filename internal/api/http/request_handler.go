package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"
)

// RequestHandler serves participation requests for attendees and initiators.
type RequestHandler struct {
	participationSvc service.ParticipationService
}

func NewRequestHandler(participationSvc service.ParticipationService) *RequestHandler {
	return &RequestHandler{participationSvc: participationSvc}
}

// Submit handles POST /users/{userId}/requests?eventId=
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	raw := r.URL.Query().Get("eventId")
	eventID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || eventID <= 0 {
		writeError(w, r, domain.BadRequestf("invalid eventId: %q", raw))
		return
	}

	req, err := h.participationSvc.SubmitRequest(r.Context(), userID, eventID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapRequestToResponse(*req))
}

// ListMine handles GET /users/{userId}/requests
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reqs, err := h.participationSvc.ListByAttendee(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapRequestsToResponse(reqs))
}

// Cancel handles PATCH /users/{userId}/requests/{requestId}/cancel
func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := h.participationSvc.Cancel(r.Context(), userID, requestID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapRequestToResponse(*req))
}

// ListForEvent handles GET /users/{userId}/events/{eventId}/requests
func (h *RequestHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reqs, err := h.participationSvc.ListForEvent(r.Context(), userID, eventID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapRequestsToResponse(reqs))
}

// Resolve handles PATCH /users/{userId}/events/{eventId}/requests
func (h *RequestHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, domain.BadRequestf("invalid request body: %v", err))
		return
	}

	status, ok := domain.ParseRequestStatus(body.Status)
	if !ok {
		writeError(w, r, domain.ErrInvalidResolution)
		return
	}

	res, err := h.participationSvc.BatchResolve(r.Context(), userID, eventID, body.RequestIDs, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapResolutionToResponse(res))
}
