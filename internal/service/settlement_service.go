package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domain "github.com/ignatzorin/freelance-ledger/internal/domain/repository"
	"github.com/ignatzorin/freelance-ledger/internal/logger"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
)

// SettlementService проводит оплату работ и переводы между балансами.
// Каждая операция - одна SERIALIZABLE транзакция: либо все изменения, либо ни одного.
type SettlementService struct {
	store  domain.LedgerStore
	events EventPublisher
	now    func() time.Time
}

func NewSettlementService(store domain.LedgerStore, events EventPublisher) *SettlementService {
	return &SettlementService{store: store, events: events, now: time.Now}
}

// JobPaidEvent полезная нагрузка события job.paid.
type JobPaidEvent struct {
	JobID        int64           `json:"job_id"`
	ClientID     int64           `json:"client_id"`
	ContractorID int64           `json:"contractor_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       time.Time       `json:"paid_at"`
}

// DepositEvent полезная нагрузка события balance.deposited.
type DepositEvent struct {
	FromProfileID int64           `json:"from_profile_id"`
	ToProfileID   int64           `json:"to_profile_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// PayJob оплачивает работу клиентом actorID.
// Блокировки берутся в порядке: работа, клиент, исполнитель.
func (s *SettlementService) PayJob(ctx context.Context, actorID, jobID int64) (*models.Job, error) {
	var (
		paid  models.Job
		event JobPaidEvent
	)

	err := s.store.WithinTx(ctx, func(tx domain.LedgerTx) error {
		job, err := tx.LockPayableJob(ctx, jobID, actorID)
		if err != nil {
			return toAppError(err, apperror.ErrJobNotFound)
		}

		client, err := tx.LockProfile(ctx, job.ClientID)
		if err != nil {
			return toAppError(err, apperror.ErrClientNotFound)
		}

		if client.Balance.LessThan(job.Price) {
			return apperror.ErrInsufficientFunds
		}

		contractor, err := tx.LockProfile(ctx, job.ContractorID)
		if err != nil {
			return toAppError(err, apperror.ErrContractorNotFound)
		}

		if err := tx.DecrementBalance(ctx, client.ID, job.Price); err != nil {
			return toAppError(err, apperror.ErrClientNotFound)
		}
		if err := tx.IncrementBalance(ctx, contractor.ID, job.Price); err != nil {
			return toAppError(err, apperror.ErrContractorNotFound)
		}

		paidAt := s.now()
		if err := tx.MarkJobPaid(ctx, job.ID, paidAt); err != nil {
			return toAppError(err, apperror.ErrJobNotFound)
		}

		paid = job.Job
		paid.Paid = models.PaymentPaid
		paid.PaymentDate = &paidAt
		paid.UpdatedAt = paidAt
		event = JobPaidEvent{
			JobID:        job.ID,
			ClientID:     client.ID,
			ContractorID: contractor.ID,
			Amount:       job.Price,
			PaidAt:       paidAt,
		}
		return nil
	})
	if err != nil {
		s.logFailure("pay job", err, logrus.Fields{"actor_id": actorID, "job_id": jobID})
		return nil, toAppError(err, apperror.ErrJobNotFound)
	}

	logger.Log.WithFields(logrus.Fields{
		"job_id":        event.JobID,
		"client_id":     event.ClientID,
		"contractor_id": event.ContractorID,
		"amount":        event.Amount.String(),
	}).Info("job paid")

	s.publish(event.ClientID, EventJobPaid, event)
	s.publish(event.ContractorID, EventJobPaid, event)

	return &paid, nil
}

// Deposit переводит amount с баланса actorID на баланс targetID или пополняет
// собственный баланс, если targetID == actorID. Сумма ограничена 25% от
// неоплаченных работ клиента по неразорванным контрактам.
func (s *SettlementService) Deposit(ctx context.Context, actorID, targetID int64, amount decimal.Decimal) (*models.Profile, error) {
	if !amount.IsPositive() {
		return nil, apperror.New(apperror.ErrCodeValidation, "сумма должна быть положительной")
	}
	if !amount.Equal(amount.Round(models.MoneyScale)) {
		return nil, apperror.New(apperror.ErrCodeValidation, "сумма должна быть кратна копейке")
	}

	var refreshed *models.Profile
	err := s.store.WithinTx(ctx, func(tx domain.LedgerTx) error {
		actor, err := tx.LockProfile(ctx, actorID)
		if err != nil {
			return toAppError(err, apperror.ErrProfileNotFound)
		}

		limit, err := tx.MaxDepositAllowed(ctx, actorID)
		if err != nil {
			return toAppError(err, nil)
		}

		if limit.Valid {
			if amount.GreaterThan(limit.Decimal) {
				return apperror.ErrDepositExceedsLimit
			}
			if amount.GreaterThan(actor.Balance) {
				return apperror.ErrDepositExceedsBalance
			}
		}

		if targetID == actorID {
			if !limit.Valid {
				logger.Log.WithFields(logrus.Fields{
					"actor_id": actorID,
					"amount":   amount.String(),
				}).Warn("deposit without outstanding jobs: balance check skipped")
			}
			if err := tx.IncrementBalance(ctx, actorID, amount); err != nil {
				return toAppError(err, apperror.ErrProfileNotFound)
			}
		} else {
			target, err := tx.LockProfile(ctx, targetID)
			if err != nil {
				return toAppError(err, apperror.ErrReceiverNotFound)
			}
			// Перевод другому профилю никогда не уводит баланс в минус,
			// даже когда лимит не определён.
			if amount.GreaterThan(actor.Balance) {
				return apperror.ErrDepositExceedsBalance
			}
			if err := tx.DecrementBalance(ctx, actor.ID, amount); err != nil {
				return toAppError(err, apperror.ErrProfileNotFound)
			}
			if err := tx.IncrementBalance(ctx, target.ID, amount); err != nil {
				return toAppError(err, apperror.ErrReceiverNotFound)
			}
		}

		refreshed, err = tx.GetProfile(ctx, actorID)
		if err != nil {
			return toAppError(err, apperror.ErrProfileNotFound)
		}
		return nil
	})
	if err != nil {
		s.logFailure("deposit", err, logrus.Fields{"actor_id": actorID, "target_id": targetID, "amount": amount.String()})
		return nil, toAppError(err, apperror.ErrProfileNotFound)
	}

	logger.Log.WithFields(logrus.Fields{
		"actor_id":  actorID,
		"target_id": targetID,
		"amount":    amount.String(),
	}).Info("deposit settled")

	s.publish(targetID, EventBalanceDeposited, DepositEvent{
		FromProfileID: actorID,
		ToProfileID:   targetID,
		Amount:        amount,
	})

	return refreshed, nil
}

func (s *SettlementService) publish(profileID int64, event string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.BroadcastToProfile(profileID, event, data); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"profile_id": profileID,
			"event":      event,
			"error":      err.Error(),
		}).Warn("settlement event not delivered")
	}
}

// logFailure пишет в лог только неожиданные ошибки: отказы по бизнес-правилам
// являются обычным ответом клиенту.
func (s *SettlementService) logFailure(op string, err error, fields logrus.Fields) {
	if apperror.CodeOf(err) != apperror.ErrCodeInternal {
		return
	}
	fields["error"] = err.Error()
	logger.Log.WithFields(fields).Error(op + " failed")
}
