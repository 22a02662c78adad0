package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email FROM users WHERE id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(7, "Ann", "ann@example.com"))

		u, err := repo.GetByID(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, "Ann", u.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email FROM users WHERE id = \\$1").
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByID(ctx, 8)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		users, err := repo.GetByIDs(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email FROM users WHERE id = ANY\\(\\$1\\)").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
				AddRow(1, "Ann", "ann@example.com").
				AddRow(2, "Bob", "bob@example.com"))

		users, err := repo.GetByIDs(ctx, []int64{1, 2})
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "Bob", users[2].Name)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
