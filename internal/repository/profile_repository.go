package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindProfile возвращает профиль без блокировки.
func (r *ProfileRepository) FindProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return common.GetByID[models.Profile](ctx, r.db, "profiles", id, common.ErrProfileNotFound)
}
