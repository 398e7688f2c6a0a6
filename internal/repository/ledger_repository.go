package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	domain "github.com/ignatzorin/freelance-ledger/internal/domain/repository"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

const profileColumns = `id, first_name, last_name, profession, balance, type, created_at, updated_at`

// LedgerRepository реализует транзакции расчётов поверх PostgreSQL.
type LedgerRepository struct {
	db         *sqlx.DB
	maxRetries int
}

func NewLedgerRepository(db *sqlx.DB, maxRetries int) *LedgerRepository {
	return &LedgerRepository{db: db, maxRetries: maxRetries}
}

// WithinTx выполняет fn в SERIALIZABLE транзакции. При конфликте сериализации
// транзакция повторяется целиком, поэтому fn должна перечитывать всё заново.
func (r *LedgerRepository) WithinTx(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	return common.WithRetry(ctx, r.maxRetries, func() error {
		return common.WithTransaction(ctx, r.db, common.SerializableTx, func(tx *sqlx.Tx) error {
			return fn(&ledgerTx{tx: tx})
		})
	})
}

type ledgerTx struct {
	tx *sqlx.Tx
}

func (t *ledgerTx) LockPayableJob(ctx context.Context, jobID, clientID int64) (*models.PayableJob, error) {
	var job models.PayableJob
	err := t.tx.GetContext(ctx, &job, `
		SELECT j.id, j.description, j.price, j.paid, j.payment_date, j.contract_id,
			j.created_at, j.updated_at, c.client_id, c.contractor_id
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.id = $1
			AND j.paid IS NULL
			AND c.client_id = $2
			AND c.status = $3
		FOR UPDATE OF j
	`, jobID, clientID, models.ContractStatusInProgress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrJobNotFound
		}
		return nil, fmt.Errorf("ledger repository: lock job: %w", err)
	}
	return &job, nil
}

func (t *ledgerTx) LockProfile(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	err := t.tx.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM profiles WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrProfileNotFound
		}
		return nil, fmt.Errorf("ledger repository: lock profile: %w", err)
	}
	return &profile, nil
}

func (t *ledgerTx) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return common.GetByID[models.Profile](ctx, t.tx, "profiles", id, common.ErrProfileNotFound)
}

func (t *ledgerTx) IncrementBalance(ctx context.Context, profileID int64, amount decimal.Decimal) error {
	return t.shiftBalance(ctx, profileID, amount)
}

func (t *ledgerTx) DecrementBalance(ctx context.Context, profileID int64, amount decimal.Decimal) error {
	return t.shiftBalance(ctx, profileID, amount.Neg())
}

func (t *ledgerTx) shiftBalance(ctx context.Context, profileID int64, delta decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE profiles SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
	`, profileID, delta)
	if err != nil {
		return fmt.Errorf("ledger repository: update balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger repository: update balance: %w", err)
	}
	if affected != 1 {
		return common.ErrProfileNotFound
	}
	return nil
}

func (t *ledgerTx) MarkJobPaid(ctx context.Context, jobID int64, paidAt time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE jobs SET paid = TRUE, payment_date = $2, updated_at = NOW()
		WHERE id = $1 AND paid IS NULL
	`, jobID, paidAt)
	if err != nil {
		return fmt.Errorf("ledger repository: mark job paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger repository: mark job paid: %w", err)
	}
	if affected != 1 {
		return common.ErrJobNotFound
	}
	return nil
}

func (t *ledgerTx) MaxDepositAllowed(ctx context.Context, clientID int64) (decimal.NullDecimal, error) {
	var limit decimal.NullDecimal
	err := t.tx.GetContext(ctx, &limit, `
		SELECT SUM(j.price) * 0.25
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.status <> $2
			AND j.paid IS NULL
			AND c.client_id = $1
	`, clientID, models.ContractStatusTerminated)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("ledger repository: max deposit: %w", err)
	}
	return limit, nil
}
