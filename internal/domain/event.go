package domain

import "time"

type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

type Event struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Annotation        string     `json:"annotation"`
	Description       string     `json:"description"`
	CategoryID        int64      `json:"category_id"`
	InitiatorID       int64      `json:"initiator_id"`
	EventDate         time.Time  `json:"event_date"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int32      `json:"participant_limit"` // 0 means unlimited
	RequestModeration bool       `json:"request_moderation"`
	State             EventState `json:"state"`
	CreatedOn         time.Time  `json:"created_on"`
	PublishedOn       *time.Time `json:"published_on,omitempty"`
}

func (e *Event) IsPublished() bool {
	return e.State == EventStatePublished
}

func (e *Event) Unlimited() bool {
	return e.ParticipantLimit == 0
}

// HasCapacityFor reports whether one more confirmation fits next to
// confirmed existing ones.
func (e *Event) HasCapacityFor(confirmed int64) bool {
	return e.Unlimited() || confirmed < int64(e.ParticipantLimit)
}

// InitialRequestStatus is the status a fresh participation request gets.
func (e *Event) InitialRequestStatus() RequestStatus {
	if !e.RequestModeration || e.Unlimited() {
		return RequestStatusConfirmed
	}
	return RequestStatusPending
}

// EventView is an event with the derived fields attached for listings.
type EventView struct {
	Event
	Views          int64 `json:"views"`
	ConfirmedCount int64 `json:"confirmed_requests"`
	Rating         int64 `json:"rating"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
