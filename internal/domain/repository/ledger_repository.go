package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignatzorin/freelance-ledger/internal/models"
)

// LedgerStore открывает SERIALIZABLE транзакции над балансами и работами.
// Ошибка, возвращённая fn, откатывает транзакцию целиком.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx операции внутри одной транзакции расчётов.
type LedgerTx interface {
	// LockPayableJob блокирует неоплаченную работу контракта в статусе in_progress,
	// клиентом которого является clientID.
	LockPayableJob(ctx context.Context, jobID, clientID int64) (*models.PayableJob, error)
	LockProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	IncrementBalance(ctx context.Context, profileID int64, amount decimal.Decimal) error
	DecrementBalance(ctx context.Context, profileID int64, amount decimal.Decimal) error
	MarkJobPaid(ctx context.Context, jobID int64, paidAt time.Time) error
	// MaxDepositAllowed возвращает 25% от суммы неоплаченных работ клиента
	// по неразорванным контрактам. Valid=false, если таких работ нет.
	MaxDepositAllowed(ctx context.Context, clientID int64) (decimal.NullDecimal, error)
}

// ReportStore агрегирующие запросы по оплаченным работам в окне [from, to).
type ReportStore interface {
	BestProfession(ctx context.Context, from, to time.Time) (*models.ProfessionEarnings, error)
	BestClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientPayment, error)
}

type ContractStore interface {
	FindContractForProfile(ctx context.Context, contractID, profileID int64) (*models.Contract, error)
	ListActiveContracts(ctx context.Context, profileID int64) ([]models.Contract, error)
	ListUnpaidJobs(ctx context.Context, profileID int64) ([]models.Job, error)
}

type ProfileStore interface {
	FindProfile(ctx context.Context, id int64) (*models.Profile, error)
}
