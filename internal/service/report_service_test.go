package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-ledger/internal/repository/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func paidJob(contractID int64, price string, at time.Time) models.Job {
	return models.Job{
		ContractID:  contractID,
		Description: "work",
		Price:       dec(price),
		Paid:        models.PaymentPaid,
		PaymentDate: &at,
	}
}

// newReportLedger: клиенты Ann (1) и Bob (2), исполнители Programmer (3) и Designer (4).
func newReportLedger(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()

	s.AddProfile(models.Profile{ID: 1, FirstName: "Ann", LastName: "Lee", Type: models.ProfileTypeClient})
	s.AddProfile(models.Profile{ID: 2, FirstName: "Bob", LastName: "Ray", Type: models.ProfileTypeClient})
	s.AddProfile(models.Profile{ID: 3, FirstName: "Xen", LastName: "Cole", Profession: "Programmer", Type: models.ProfileTypeContractor})
	s.AddProfile(models.Profile{ID: 4, FirstName: "Yan", LastName: "Moss", Profession: "Designer", Type: models.ProfileTypeContractor})

	s.AddContract(models.Contract{ID: 10, ClientID: 1, ContractorID: 3, Status: models.ContractStatusInProgress})
	s.AddContract(models.Contract{ID: 11, ClientID: 2, ContractorID: 4, Status: models.ContractStatusTerminated})

	s.AddJob(paidJob(10, "100", day(2020, 8, 15).Add(10*time.Hour)))
	s.AddJob(paidJob(10, "200", day(2020, 8, 17).Add(23*time.Hour+59*time.Minute)))
	s.AddJob(paidJob(11, "150", day(2020, 8, 16)))
	// вне окна [2020-08-15, 2020-08-17]
	s.AddJob(paidJob(11, "1000", day(2020, 8, 18)))
	s.AddJob(paidJob(11, "1000", day(2020, 8, 14).Add(23*time.Hour)))
	s.AddJob(models.Job{ContractID: 10, Description: "unpaid", Price: dec("5000")})

	return s
}

func TestReportService_BestProfession(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)

	best, err := svc.BestProfession(context.Background(), day(2020, 8, 15), day(2020, 8, 17))
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "Programmer", best.Profession)
	assert.True(t, dec("300").Equal(best.TotalEarnings))
}

func TestReportService_BestProfession_EmptyWindow(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)

	best, err := svc.BestProfession(context.Background(), day(2021, 1, 1), day(2021, 1, 31))
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestReportService_BestClients(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)

	clients, err := svc.BestClients(context.Background(), day(2020, 8, 15), day(2020, 8, 17), 2)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, int64(1), clients[0].ID)
	assert.Equal(t, "Ann Lee", clients[0].FullName)
	assert.True(t, dec("300").Equal(clients[0].Paid))
	assert.Equal(t, int64(2), clients[1].ID)
	assert.True(t, dec("150").Equal(clients[1].Paid))

	top, err := svc.BestClients(context.Background(), day(2020, 8, 15), day(2020, 8, 17), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].ID)
}

func TestReportService_BestClients_SingleDay(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)

	clients, err := svc.BestClients(context.Background(), day(2020, 8, 18), day(2020, 8, 18), 5)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, int64(2), clients[0].ID)
	assert.True(t, dec("1000").Equal(clients[0].Paid))
}

func TestReportService_BestClients_Empty(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)

	clients, err := svc.BestClients(context.Background(), day(2021, 1, 1), day(2021, 1, 2), 2)
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestReportService_Validation(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)
	ctx := context.Background()

	_, err := svc.BestClients(ctx, day(2020, 8, 15), day(2020, 8, 17), 0)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.BestClients(ctx, day(2020, 8, 17), day(2020, 8, 15), 2)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.BestProfession(ctx, day(2020, 8, 17), day(2020, 8, 15))
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Report(ctx, ReportKind("worst-clients"), day(2020, 8, 15), day(2020, 8, 17), 2)
	assert.True(t, apperror.IsValidation(err))
}

func TestReportService_Report(t *testing.T) {
	svc := NewReportService(newReportLedger(t), 2)
	ctx := context.Background()

	result, err := svc.Report(ctx, ReportBestProfession, day(2020, 8, 15), day(2020, 8, 17), 0)
	require.NoError(t, err)
	best, ok := result.(*models.ProfessionEarnings)
	require.True(t, ok)
	assert.Equal(t, "Programmer", best.Profession)

	result, err = svc.Report(ctx, ReportBestClients, day(2020, 8, 15), day(2020, 8, 17), 1)
	require.NoError(t, err)
	clients, ok := result.([]models.ClientPayment)
	require.True(t, ok)
	assert.Len(t, clients, 1)
}

func TestReportWindow(t *testing.T) {
	from, to, err := reportWindow(
		time.Date(2020, 8, 15, 18, 30, 0, 0, time.UTC),
		time.Date(2020, 8, 17, 1, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, day(2020, 8, 15), from)
	assert.Equal(t, day(2020, 8, 18), to)
}

func TestNewReportService_DefaultLimit(t *testing.T) {
	assert.Equal(t, 2, NewReportService(memory.New(), 0).DefaultLimit())
	assert.Equal(t, 5, NewReportService(memory.New(), 5).DefaultLimit())
}
