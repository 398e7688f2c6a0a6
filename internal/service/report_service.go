package service

import (
	"context"
	"time"

	domain "github.com/ignatzorin/freelance-ledger/internal/domain/repository"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
)

// ReportKind вид административного отчёта.
type ReportKind string

const (
	ReportBestProfession ReportKind = "best-profession"
	ReportBestClients    ReportKind = "best-clients"
)

// ReportService строит отчёты по оплаченным работам.
type ReportService struct {
	store        domain.ReportStore
	defaultLimit int
}

func NewReportService(store domain.ReportStore, defaultLimit int) *ReportService {
	if defaultLimit < 1 {
		defaultLimit = 2
	}
	return &ReportService{store: store, defaultLimit: defaultLimit}
}

// DefaultLimit лимит BestClients, если вызывающий его не указал.
func (s *ReportService) DefaultLimit() int {
	return s.defaultLimit
}

// Report выполняет отчёт kind. Для best-profession результат *models.ProfessionEarnings
// (nil, если оплат в окне нет), для best-clients []models.ClientPayment.
func (s *ReportService) Report(ctx context.Context, kind ReportKind, start, end time.Time, limit int) (any, error) {
	switch kind {
	case ReportBestProfession:
		return s.BestProfession(ctx, start, end)
	case ReportBestClients:
		return s.BestClients(ctx, start, end, limit)
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный отчёт: "+string(kind))
	}
}

// BestProfession профессия с наибольшим заработком за дни [start, end] включительно.
func (s *ReportService) BestProfession(ctx context.Context, start, end time.Time) (*models.ProfessionEarnings, error) {
	from, to, err := reportWindow(start, end)
	if err != nil {
		return nil, err
	}

	best, err := s.store.BestProfession(ctx, from, to)
	if err != nil {
		return nil, toAppError(err, nil)
	}
	return best, nil
}

// BestClients клиенты, больше всех заплатившие за дни [start, end], по убыванию суммы.
func (s *ReportService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]models.ClientPayment, error) {
	if limit < 1 {
		return nil, apperror.New(apperror.ErrCodeValidation, "limit должен быть положительным целым числом")
	}

	from, to, err := reportWindow(start, end)
	if err != nil {
		return nil, err
	}

	clients, err := s.store.BestClients(ctx, from, to, limit)
	if err != nil {
		return nil, toAppError(err, nil)
	}
	if clients == nil {
		clients = []models.ClientPayment{}
	}
	return clients, nil
}

// reportWindow переводит даты в полуинтервал [start 00:00, end+1 день 00:00) в UTC.
func reportWindow(start, end time.Time) (time.Time, time.Time, error) {
	from := truncateDay(start)
	to := truncateDay(end)
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.New(apperror.ErrCodeValidation, "end не может быть раньше start")
	}
	return from, to.AddDate(0, 0, 1), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
