package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("category with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
