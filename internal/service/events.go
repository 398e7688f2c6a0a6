package service

// События расчётов, рассылаемые участникам после фиксации транзакции.
const (
	EventJobPaid          = "job.paid"
	EventBalanceDeposited = "balance.deposited"
)

// EventPublisher доставляет событие конкретному профилю. Доставка best-effort:
// ошибка публикации не отменяет уже зафиксированный расчёт.
type EventPublisher interface {
	BroadcastToProfile(profileID int64, event string, data any) error
}
