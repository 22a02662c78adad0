package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"

	"github.com/lib/pq"
)

const scoreExpr = `COALESCE(SUM(CASE WHEN r.liked THEN 1 ELSE -1 END), 0)`

type ratingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetVote(ctx context.Context, eventID, voterID int64) (domain.Vote, error) {
	return getVote(ctx, r.db, `SELECT liked FROM ratings WHERE event_id = $1 AND user_id = $2`, eventID, voterID)
}

func getVote(ctx context.Context, q rowQuerier, query string, eventID, voterID int64) (domain.Vote, error) {
	var liked bool
	err := q.QueryRowContext(ctx, query, eventID, voterID).Scan(&liked)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NoVote, nil
	}
	if err != nil {
		return domain.NoVote, err
	}
	if liked {
		return domain.Liked, nil
	}
	return domain.Disliked, nil
}

// Apply locks the voter's row, moves it through Vote.Apply and writes only
// when the vote changes.
func (r *ratingRepository) Apply(ctx context.Context, eventID, voterID int64, action domain.VoteAction) (domain.Vote, error) {
	logger.EnterMethod("ratingRepository.Apply", "eventID", eventID, "voterID", voterID, "action", action)

	if !action.Valid() {
		err := domain.BadRequestf("unknown vote action %q", action)
		logger.ExitMethodWithError("ratingRepository.Apply", err)
		return domain.NoVote, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NoVote, err
	}
	defer tx.Rollback()

	current, err := getVote(ctx, tx, `SELECT liked FROM ratings WHERE event_id = $1 AND user_id = $2 FOR UPDATE`, eventID, voterID)
	if err != nil {
		return domain.NoVote, err
	}

	next := current.Apply(action)
	switch {
	case next == current:
	case next == domain.NoVote:
		_, err = tx.ExecContext(ctx, `DELETE FROM ratings WHERE event_id = $1 AND user_id = $2`, eventID, voterID)
	default:
		err = upsert(ctx, tx, eventID, voterID, next == domain.Liked)
	}
	if err != nil {
		logger.ExitMethodWithError("ratingRepository.Apply", err)
		return domain.NoVote, err
	}

	if err := tx.Commit(); err != nil {
		return domain.NoVote, err
	}
	logger.ExitMethod("ratingRepository.Apply", "vote", next.String(), "changed", next != current)
	return next, nil
}

// upsert also covers a first vote racing another first vote for the same pair.
func upsert(ctx context.Context, tx *sql.Tx, eventID, voterID int64, liked bool) error {
	query := `INSERT INTO ratings (event_id, user_id, liked, created_on, updated_on)
	          VALUES ($1, $2, $3, NOW(), NOW())
	          ON CONFLICT (event_id, user_id) DO UPDATE
	          SET liked = EXCLUDED.liked, updated_on = EXCLUDED.updated_on`
	_, err := tx.ExecContext(ctx, query, eventID, voterID, liked)
	return err
}

func (r *ratingRepository) EventRating(ctx context.Context, eventID int64) (int64, error) {
	var score int64
	err := r.db.QueryRowContext(ctx, `SELECT `+scoreExpr+` FROM ratings r WHERE r.event_id = $1`, eventID).Scan(&score)
	return score, err
}

func (r *ratingRepository) EventRatings(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	query := `SELECT r.event_id, ` + scoreExpr + ` FROM ratings r WHERE r.event_id = ANY($1) GROUP BY r.event_id`
	return r.scores(ctx, query, eventIDs)
}

func (r *ratingRepository) InitiatorRating(ctx context.Context, initiatorID int64) (int64, error) {
	var score int64
	query := `SELECT ` + scoreExpr + ` FROM ratings r JOIN events e ON e.id = r.event_id WHERE e.initiator_id = $1`
	err := r.db.QueryRowContext(ctx, query, initiatorID).Scan(&score)
	return score, err
}

func (r *ratingRepository) InitiatorRatings(ctx context.Context, initiatorIDs []int64) (map[int64]int64, error) {
	query := `SELECT e.initiator_id, ` + scoreExpr + ` FROM ratings r
	          JOIN events e ON e.id = r.event_id
	          WHERE e.initiator_id = ANY($1) GROUP BY e.initiator_id`
	return r.scores(ctx, query, initiatorIDs)
}

func (r *ratingRepository) scores(ctx context.Context, query string, ids []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, score int64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, err
		}
		out[id] = score
	}
	return out, rows.Err()
}
