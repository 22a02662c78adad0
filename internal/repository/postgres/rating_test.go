package postgres_test

import (
	"context"
	"errors"
	"testing"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const lockVoteSQL = "SELECT liked FROM ratings WHERE event_id = \\$1 AND user_id = \\$2 FOR UPDATE"
const upsertVoteSQL = "INSERT INTO ratings (.+) ON CONFLICT \\(event_id, user_id\\) DO UPDATE"

func TestRatingRepository_GetVote(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRatingRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT liked FROM ratings WHERE event_id = \\$1 AND user_id = \\$2").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"liked"}).AddRow(false))
	vote, err := repo.GetVote(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, domain.Disliked, vote)

	mock.ExpectQuery("SELECT liked FROM ratings").
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"liked"}))
	vote, err = repo.GetVote(ctx, 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.NoVote, vote)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Apply(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRatingRepository(db)
	ctx := context.Background()

	noVote := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"liked"}) }
	stored := func(liked bool) *sqlmock.Rows { return sqlmock.NewRows([]string{"liked"}).AddRow(liked) }

	t.Run("FirstLikeInserts", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockVoteSQL).WithArgs(int64(1), int64(2)).WillReturnRows(noVote())
		mock.ExpectExec(upsertVoteSQL).
			WithArgs(int64(1), int64(2), true).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		vote, err := repo.Apply(ctx, 1, 2, domain.VoteActionLike)
		assert.NoError(t, err)
		assert.Equal(t, domain.Liked, vote)
	})

	t.Run("RepeatedLikeSkipsWrite", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockVoteSQL).WithArgs(int64(1), int64(2)).WillReturnRows(stored(true))
		mock.ExpectCommit()

		vote, err := repo.Apply(ctx, 1, 2, domain.VoteActionLike)
		assert.NoError(t, err)
		assert.Equal(t, domain.Liked, vote)
	})

	t.Run("DislikeFlipsLike", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockVoteSQL).WithArgs(int64(1), int64(2)).WillReturnRows(stored(true))
		mock.ExpectExec(upsertVoteSQL).
			WithArgs(int64(1), int64(2), false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		vote, err := repo.Apply(ctx, 1, 2, domain.VoteActionDislike)
		assert.NoError(t, err)
		assert.Equal(t, domain.Disliked, vote)
	})

	t.Run("RemoveDislikeOnLikeIsNoop", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockVoteSQL).WithArgs(int64(1), int64(2)).WillReturnRows(stored(true))
		mock.ExpectCommit()

		vote, err := repo.Apply(ctx, 1, 2, domain.VoteActionRemoveDislike)
		assert.NoError(t, err)
		assert.Equal(t, domain.Liked, vote)
	})

	t.Run("RemoveLikeDeletes", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockVoteSQL).WithArgs(int64(1), int64(2)).WillReturnRows(stored(true))
		mock.ExpectExec("DELETE FROM ratings WHERE event_id = \\$1 AND user_id = \\$2").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		vote, err := repo.Apply(ctx, 1, 2, domain.VoteActionRemoveLike)
		assert.NoError(t, err)
		assert.Equal(t, domain.NoVote, vote)
	})

	t.Run("WriteErrorRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockVoteSQL).WithArgs(int64(1), int64(2)).WillReturnRows(noVote())
		mock.ExpectExec(upsertVoteSQL).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.Apply(ctx, 1, 2, domain.VoteActionDislike)
		assert.EqualError(t, err, "connection reset")
	})

	t.Run("UnknownAction", func(t *testing.T) {
		_, err := repo.Apply(ctx, 1, 2, domain.VoteAction("LOVE"))
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Aggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRatingRepository(db)
	ctx := context.Background()

	t.Run("EventRating", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(CASE WHEN r.liked THEN 1 ELSE -1 END\\), 0\\) FROM ratings r WHERE r.event_id = \\$1").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"score"}).AddRow(-1))

		score, err := repo.EventRating(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(-1), score)
	})

	t.Run("InitiatorRatings", func(t *testing.T) {
		mock.ExpectQuery("SELECT e.initiator_id, (.+) JOIN events e ON e.id = r.event_id (.+) GROUP BY e.initiator_id").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"initiator_id", "score"}).AddRow(3, 4))

		scores, err := repo.InitiatorRatings(ctx, []int64{3, 4})
		assert.NoError(t, err)
		assert.Equal(t, int64(4), scores[3])
		assert.Zero(t, scores[4])
	})

	t.Run("EventRatingsEmpty", func(t *testing.T) {
		scores, err := repo.EventRatings(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, scores)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
