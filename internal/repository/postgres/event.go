package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"

	"github.com/lib/pq"
)

const eventColumns = `e.id, e.title, e.annotation, e.description, e.category_id, e.initiator_id, e.event_date, e.paid, e.participant_limit, e.request_moderation, e.state, e.created_on, e.published_on`

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (domain.Event, error) {
	var e domain.Event
	var publishedOn sql.NullTime
	err := s.Scan(&e.ID, &e.Title, &e.Annotation, &e.Description, &e.CategoryID, &e.InitiatorID, &e.EventDate,
		&e.Paid, &e.ParticipantLimit, &e.RequestModeration, &e.State, &e.CreatedOn, &publishedOn)
	if publishedOn.Valid {
		e.PublishedOn = &publishedOn.Time
	}
	return e, err
}

func (r *eventRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := r.getOne(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("event with id=%d was not found", id)
	}
	return e, err
}

func (r *eventRepository) GetPublishedByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := r.getOne(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1 AND e.state = 'PUBLISHED'`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("event with id=%d was not found", id)
	}
	return e, err
}

func (r *eventRepository) GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error) {
	e, err := r.getOne(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1 AND e.initiator_id = $2`, id, initiatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("event with id=%d was not found", id)
	}
	return e, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *eventRepository) Search(ctx context.Context, f domain.EventFilter, page domain.Page) ([]domain.Event, error) {
	logger.EnterMethod("eventRepository.Search", "from", page.From, "size", page.Size)

	query := `SELECT ` + eventColumns + ` FROM events e WHERE 1 = 1`
	args := []any{}
	argIdx := 1

	if f.PublishedOnly {
		query += " AND e.state = 'PUBLISHED'"
	}
	if f.Text != "" {
		query += fmt.Sprintf(" AND (e.annotation ILIKE $%d OR e.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+likeEscaper.Replace(f.Text)+"%")
		argIdx++
	}
	if len(f.CategoryIDs) > 0 {
		query += fmt.Sprintf(" AND e.category_id = ANY($%d)", argIdx)
		args = append(args, pq.Array(f.CategoryIDs))
		argIdx++
	}
	if f.Paid != nil {
		query += fmt.Sprintf(" AND e.paid = $%d", argIdx)
		args = append(args, *f.Paid)
		argIdx++
	}
	if f.RangeStart != nil {
		query += fmt.Sprintf(" AND e.event_date >= $%d", argIdx)
		args = append(args, *f.RangeStart)
		argIdx++
	}
	if f.RangeEnd != nil {
		query += fmt.Sprintf(" AND e.event_date <= $%d", argIdx)
		args = append(args, *f.RangeEnd)
		argIdx++
	}
	if f.After != nil {
		query += fmt.Sprintf(" AND e.event_date > $%d", argIdx)
		args = append(args, *f.After)
		argIdx++
	}
	if f.OnlyAvailable {
		query += ` AND (e.participant_limit = 0 OR e.participant_limit > (
			SELECT count(*) FROM participation_requests pr WHERE pr.event_id = e.id AND pr.status = 'CONFIRMED'))`
	}

	query += " ORDER BY e.event_date ASC, e.id ASC"
	if !page.Unpaged() {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, page.Size, page.From)
	}

	events, err := r.list(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("eventRepository.Search", err)
		return nil, err
	}
	logger.ExitMethod("eventRepository.Search", "count", len(events))
	return events, nil
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
