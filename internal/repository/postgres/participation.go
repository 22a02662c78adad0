package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"

	"github.com/lib/pq"
)

const requestColumns = `id, event_id, requester_id, status, created_on`

type participationRepository struct {
	db *sql.DB
}

func NewParticipationRepository(db *sql.DB) repository.ParticipationRepository {
	return &participationRepository{db: db}
}

func scanRequest(s scanner) (domain.ParticipationRequest, error) {
	var pr domain.ParticipationRequest
	err := s.Scan(&pr.ID, &pr.EventID, &pr.RequesterID, &pr.Status, &pr.CreatedOn)
	return pr, err
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listRequests(ctx context.Context, q querier, query string, args ...any) ([]domain.ParticipationRequest, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.ParticipationRequest{}
	for rows.Next() {
		pr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, pr)
	}
	return requests, rows.Err()
}

func (r *participationRepository) GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	pr, err := scanRequest(r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM participation_requests WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("request with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *participationRepository) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.ParticipationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM participation_requests WHERE id = $1 AND requester_id = $2`
	pr, err := scanRequest(r.db.QueryRowContext(ctx, query, id, requesterID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("request with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *participationRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.ParticipationRequest, error) {
	return listRequests(ctx, r.db, `SELECT `+requestColumns+` FROM participation_requests WHERE requester_id = $1 ORDER BY created_on, id`, requesterID)
}

func (r *participationRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error) {
	return listRequests(ctx, r.db, `SELECT `+requestColumns+` FROM participation_requests WHERE event_id = $1 ORDER BY created_on, id`, eventID)
}

func (r *participationRepository) ExistsActive(ctx context.Context, eventID, requesterID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM participation_requests WHERE event_id = $1 AND requester_id = $2 AND status <> 'CANCELED')`
	err := r.db.QueryRowContext(ctx, query, eventID, requesterID).Scan(&exists)
	return exists, err
}

func (r *participationRepository) CountConfirmedByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	query := `SELECT event_id, count(*) FROM participation_requests
	          WHERE event_id = ANY($1) AND status = 'CONFIRMED' GROUP BY event_id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *participationRepository) CreateWithinCapacity(ctx context.Context, req *domain.ParticipationRequest) error {
	logger.EnterMethod("participationRepository.CreateWithinCapacity", "eventID", req.EventID, "requesterID", req.RequesterID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	event, err := lockEvent(ctx, tx, req.EventID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("event with id=%d was not found", req.EventID)
	}
	if err != nil {
		return err
	}
	if event.initiatorID == req.RequesterID {
		logger.ExitMethodWithError("participationRepository.CreateWithinCapacity", domain.ErrSelfParticipation)
		return domain.ErrSelfParticipation
	}
	if event.state != domain.EventStatePublished {
		logger.ExitMethodWithError("participationRepository.CreateWithinCapacity", domain.ErrEventNotPublished)
		return domain.ErrEventNotPublished
	}

	if event.limit > 0 {
		confirmed, err := countConfirmed(ctx, tx, req.EventID)
		if err != nil {
			return err
		}
		if confirmed >= int64(event.limit) {
			logger.ExitMethodWithError("participationRepository.CreateWithinCapacity", domain.ErrCapacityExceeded)
			return domain.ErrCapacityExceeded
		}
	}

	query := `INSERT INTO participation_requests (event_id, requester_id, status, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	if req.CreatedOn.IsZero() {
		req.CreatedOn = time.Now()
	}
	err = tx.QueryRowContext(ctx, query, req.EventID, req.RequesterID, req.Status, req.CreatedOn).Scan(&req.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateRequest
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.ExitMethod("participationRepository.CreateWithinCapacity", "requestID", req.ID, "status", req.Status)
	return nil
}

func (r *participationRepository) Resolve(ctx context.Context, eventID int64, ids []int64, plan domain.ResolutionPlanner) (domain.Resolution, error) {
	logger.EnterMethod("participationRepository.Resolve", "eventID", eventID, "count", len(ids))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Resolution{}, err
	}
	defer tx.Rollback()

	event, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Resolution{}, domain.NotFoundf("event with id=%d was not found", eventID)
		}
		return domain.Resolution{}, err
	}

	query := `SELECT ` + requestColumns + ` FROM participation_requests WHERE event_id = $1 AND id = ANY($2) FOR UPDATE`
	found, err := listRequests(ctx, tx, query, eventID, pq.Array(ids))
	if err != nil {
		return domain.Resolution{}, err
	}
	byID := make(map[int64]domain.ParticipationRequest, len(found))
	for _, pr := range found {
		byID[pr.ID] = pr
	}
	requests := make([]domain.ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		pr, ok := byID[id]
		if !ok {
			return domain.Resolution{}, domain.NotFoundf("request with id=%d was not found", id)
		}
		requests = append(requests, pr)
	}

	confirmed, err := countConfirmed(ctx, tx, eventID)
	if err != nil {
		return domain.Resolution{}, err
	}

	res, err := plan(event.limit, confirmed, requests)
	if err != nil {
		logger.ExitMethodWithError("participationRepository.Resolve", err)
		return domain.Resolution{}, err
	}

	if err := setStatus(ctx, tx, domain.RequestStatusConfirmed, res.Confirmed); err != nil {
		return domain.Resolution{}, err
	}
	if err := setStatus(ctx, tx, domain.RequestStatusRejected, res.Rejected); err != nil {
		return domain.Resolution{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Resolution{}, err
	}
	logger.ExitMethod("participationRepository.Resolve", "confirmed", len(res.Confirmed), "rejected", len(res.Rejected))
	return res, nil
}

func setStatus(ctx context.Context, tx *sql.Tx, status domain.RequestStatus, requests []domain.ParticipationRequest) error {
	if len(requests) == 0 {
		return nil
	}
	ids := make([]int64, len(requests))
	for i, pr := range requests {
		ids[i] = pr.ID
	}
	_, err := tx.ExecContext(ctx, `UPDATE participation_requests SET status = $1 WHERE id = ANY($2)`, status, pq.Array(ids))
	return err
}

func (r *participationRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE participation_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE participation_requests", n, err, "id", id, "status", status)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundf("request with id=%d was not found", id)
	}
	return nil
}

func (r *participationRepository) ListOverbooked(ctx context.Context) ([]repository.OverbookedEvent, error) {
	query := `SELECT e.id, e.participant_limit, count(pr.id)
	          FROM events e
	          JOIN participation_requests pr ON pr.event_id = e.id AND pr.status = 'CONFIRMED'
	          WHERE e.participant_limit > 0
	          GROUP BY e.id, e.participant_limit
	          HAVING count(pr.id) > e.participant_limit
	          ORDER BY e.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var out []repository.OverbookedEvent
	for rows.Next() {
		o := repository.OverbookedEvent{CheckedAt: now}
		if err := rows.Scan(&o.EventID, &o.ParticipantLimit, &o.Confirmed); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *participationRepository) Demote(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error) {
	logger.EnterMethod("participationRepository.Demote", "eventID", eventID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	event, err := lockEvent(ctx, tx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("event with id=%d was not found", eventID)
	}
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + requestColumns + ` FROM participation_requests
	          WHERE event_id = $1 AND status = 'CONFIRMED' ORDER BY created_on, id FOR UPDATE`
	confirmed, err := listRequests(ctx, tx, query, eventID)
	if err != nil {
		return nil, err
	}

	excess := domain.ExcessConfirmed(event.limit, confirmed)
	if len(excess) == 0 {
		logger.ExitMethod("participationRepository.Demote", "demoted", 0)
		return nil, nil
	}
	if err := setStatus(ctx, tx, domain.RequestStatusRejected, excess); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for i := range excess {
		excess[i].Status = domain.RequestStatusRejected
	}
	logger.ExitMethod("participationRepository.Demote", "demoted", len(excess))
	return excess, nil
}
