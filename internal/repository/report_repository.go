package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

// ReportRepository только читает: каждый отчёт выполняется в read-only транзакции
// и не видит частично зафиксированных расчётов.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// BestProfession возвращает профессию с наибольшим заработком в окне [from, to).
// Возвращает nil, если оплат в окне нет. При равенстве сумм порядок не определён.
func (r *ReportRepository) BestProfession(ctx context.Context, from, to time.Time) (*models.ProfessionEarnings, error) {
	var row models.ProfessionEarnings
	found := true
	err := common.WithTransaction(ctx, r.db, common.ReadOnlySnapshotTx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &row, `
			SELECT p.profession, SUM(j.price) AS total_earnings
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			JOIN profiles p ON p.id = c.contractor_id
			WHERE j.paid IS TRUE
				AND j.payment_date >= $1
				AND j.payment_date < $2
			GROUP BY p.profession
			ORDER BY total_earnings DESC
			LIMIT 1
		`, from, to)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report repository: best profession: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

// BestClients возвращает клиентов, больше всех заплативших в окне [from, to).
func (r *ReportRepository) BestClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientPayment, error) {
	rows := []models.ClientPayment{}
	err := common.WithTransaction(ctx, r.db, common.ReadOnlySnapshotTx, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &rows, `
			SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS paid
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			JOIN profiles p ON p.id = c.client_id
			WHERE j.paid IS TRUE
				AND j.payment_date >= $1
				AND j.payment_date < $2
			GROUP BY p.id, p.first_name, p.last_name
			ORDER BY paid DESC
			LIMIT $3
		`, from, to, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("report repository: best clients: %w", err)
	}
	return rows, nil
}
