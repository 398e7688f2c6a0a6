package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

type ContractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// FindContractForProfile возвращает контракт, только если профиль является его стороной.
func (r *ContractRepository) FindContractForProfile(ctx context.Context, contractID, profileID int64) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.GetContext(ctx, &contract, `
		SELECT * FROM contracts
		WHERE id = $1 AND (client_id = $2 OR contractor_id = $2)
	`, contractID, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrContractNotFound
		}
		return nil, fmt.Errorf("contract repository: find: %w", err)
	}
	return &contract, nil
}

// ListActiveContracts возвращает неразорванные контракты профиля.
func (r *ContractRepository) ListActiveContracts(ctx context.Context, profileID int64) ([]models.Contract, error) {
	contracts := []models.Contract{}
	err := r.db.SelectContext(ctx, &contracts, `
		SELECT * FROM contracts
		WHERE status <> $2 AND (client_id = $1 OR contractor_id = $1)
		ORDER BY id
	`, profileID, models.ContractStatusTerminated)
	if err != nil {
		return nil, fmt.Errorf("contract repository: list active: %w", err)
	}
	return contracts, nil
}

// ListUnpaidJobs возвращает неоплаченные работы по активным контрактам профиля.
func (r *ContractRepository) ListUnpaidJobs(ctx context.Context, profileID int64) ([]models.Job, error) {
	jobs := []models.Job{}
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT j.* FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid IS NULL
			AND c.status = $2
			AND (c.client_id = $1 OR c.contractor_id = $1)
		ORDER BY j.id
	`, profileID, models.ContractStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("contract repository: list unpaid jobs: %w", err)
	}
	return jobs, nil
}
