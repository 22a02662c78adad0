package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below matches exactly one kind via errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

var (
	ErrSelfParticipation    = newKindError(ErrConflict, "initiator cannot request participation in their own event")
	ErrSelfRating           = newKindError(ErrConflict, "initiator cannot rate their own event")
	ErrEventNotPublished    = newKindError(ErrConflict, "event is not published")
	ErrCapacityExceeded     = newKindError(ErrConflict, "participant limit exceeded")
	ErrCapacityReached      = newKindError(ErrConflict, "participant limit has been reached")
	ErrNotAllPending        = newKindError(ErrConflict, "request must have status PENDING")
	ErrDuplicateRequest     = newKindError(ErrConflict, "participation request already exists")
	ErrRequestNotCancelable = newKindError(ErrConflict, "rejected request cannot be canceled")

	ErrInvalidDateRange  = newKindError(ErrBadRequest, "rangeStart must not be after rangeEnd")
	ErrInvalidResolution = newKindError(ErrBadRequest, "status must be CONFIRMED or REJECTED")
	ErrInvalidPage       = newKindError(ErrBadRequest, "from must be >= 0 and size must be > 0")
	ErrInvalidSort       = newKindError(ErrBadRequest, "unknown sort")
)

type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// NotFoundf builds an error matching ErrNotFound, e.g.
// NotFoundf("event with id=%d was not found", id).
func NotFoundf(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// BadRequestf builds an error matching ErrBadRequest.
func BadRequestf(format string, args ...any) error {
	return &kindError{kind: ErrBadRequest, msg: fmt.Sprintf(format, args...)}
}
