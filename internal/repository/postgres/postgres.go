package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CategoryRepository
	repository.EventRepository
	repository.ParticipationRepository
	repository.RatingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		CategoryRepository:      NewCategoryRepository(db),
		EventRepository:         NewEventRepository(db),
		ParticipationRepository: NewParticipationRepository(db),
		RatingRepository:        NewRatingRepository(db),
	}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// lockedEvent is the event state read under the row lock.
type lockedEvent struct {
	limit       int32
	state       domain.EventState
	initiatorID int64
}

// lockEvent takes the row lock that serializes capacity accounting for one event.
func lockEvent(ctx context.Context, tx *sql.Tx, eventID int64) (lockedEvent, error) {
	var e lockedEvent
	query := `SELECT participant_limit, state, initiator_id FROM events WHERE id = $1 FOR UPDATE`
	err := tx.QueryRowContext(ctx, query, eventID).Scan(&e.limit, &e.state, &e.initiatorID)
	return e, err
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func countConfirmed(ctx context.Context, q rowQuerier, eventID int64) (int64, error) {
	var count int64
	err := q.QueryRowContext(ctx, `SELECT count(*) FROM participation_requests WHERE event_id = $1 AND status = 'CONFIRMED'`, eventID).Scan(&count)
	return count, err
}
