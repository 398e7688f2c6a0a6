package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/ignatzorin/freelance-ledger/internal/domain/repository"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

var depositShare = decimal.RequireFromString("0.25")

// Store хранит профили, контракты и работы в памяти. Транзакция держит
// мьютекс целиком и работает на копии данных, поэтому транзакции строго
// последовательны, а откат сводится к отбрасыванию копии.
type Store struct {
	mu sync.Mutex

	profiles  map[int64]models.Profile
	contracts map[int64]models.Contract
	jobs      map[int64]models.Job
	nextID    int64
}

func New() *Store {
	return &Store{
		profiles:  make(map[int64]models.Profile),
		contracts: make(map[int64]models.Contract),
		jobs:      make(map[int64]models.Job),
	}
}

func (s *Store) id(requested int64) int64 {
	if requested != 0 {
		if requested > s.nextID {
			s.nextID = requested
		}
		return requested
	}
	s.nextID++
	return s.nextID
}

func (s *Store) AddProfile(p models.Profile) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id(p.ID)
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	s.profiles[p.ID] = p
	return p
}

func (s *Store) AddContract(c models.Contract) models.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.id(c.ID)
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	s.contracts[c.ID] = c
	return c
}

func (s *Store) AddJob(j models.Job) models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	j.ID = s.id(j.ID)
	now := time.Now()
	j.CreatedAt, j.UpdatedAt = now, now
	s.jobs[j.ID] = j
	return j
}

// Profile возвращает зафиксированное состояние профиля.
func (s *Store) Profile(id int64) (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	return p, ok
}

// Job возвращает зафиксированное состояние работы.
func (s *Store) Job(id int64) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

// TotalBalance сумма балансов всех профилей.
func (s *Store) TotalBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, p := range s.profiles {
		total = total.Add(p.Balance)
	}
	return total
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		profiles:  maps.Clone(s.profiles),
		contracts: s.contracts,
		jobs:      maps.Clone(s.jobs),
	}
	if err := fn(tx); err != nil {
		return err
	}
	// Отменённый до фиксации запрос откатывается целиком.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.profiles = tx.profiles
	s.jobs = tx.jobs
	return nil
}

type memTx struct {
	profiles  map[int64]models.Profile
	contracts map[int64]models.Contract
	jobs      map[int64]models.Job
}

func (t *memTx) LockPayableJob(_ context.Context, jobID, clientID int64) (*models.PayableJob, error) {
	job, ok := t.jobs[jobID]
	if !ok || job.IsPaid() {
		return nil, common.ErrJobNotFound
	}
	contract, ok := t.contracts[job.ContractID]
	if !ok || contract.ClientID != clientID || contract.Status != models.ContractStatusInProgress {
		return nil, common.ErrJobNotFound
	}
	return &models.PayableJob{Job: job, ClientID: contract.ClientID, ContractorID: contract.ContractorID}, nil
}

func (t *memTx) LockProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return t.GetProfile(ctx, id)
}

func (t *memTx) GetProfile(_ context.Context, id int64) (*models.Profile, error) {
	p, ok := t.profiles[id]
	if !ok {
		return nil, common.ErrProfileNotFound
	}
	return &p, nil
}

func (t *memTx) IncrementBalance(_ context.Context, profileID int64, amount decimal.Decimal) error {
	return t.shiftBalance(profileID, amount)
}

func (t *memTx) DecrementBalance(_ context.Context, profileID int64, amount decimal.Decimal) error {
	return t.shiftBalance(profileID, amount.Neg())
}

func (t *memTx) shiftBalance(profileID int64, delta decimal.Decimal) error {
	p, ok := t.profiles[profileID]
	if !ok {
		return common.ErrProfileNotFound
	}
	p.Balance = p.Balance.Add(delta)
	p.UpdatedAt = time.Now()
	t.profiles[profileID] = p
	return nil
}

func (t *memTx) MarkJobPaid(_ context.Context, jobID int64, paidAt time.Time) error {
	job, ok := t.jobs[jobID]
	if !ok || job.IsPaid() {
		return common.ErrJobNotFound
	}
	job.Paid = models.PaymentPaid
	job.PaymentDate = &paidAt
	job.UpdatedAt = time.Now()
	t.jobs[jobID] = job
	return nil
}

func (t *memTx) MaxDepositAllowed(_ context.Context, clientID int64) (decimal.NullDecimal, error) {
	sum := decimal.Zero
	found := false
	for _, job := range t.jobs {
		if job.IsPaid() {
			continue
		}
		contract, ok := t.contracts[job.ContractID]
		if !ok || contract.ClientID != clientID || contract.Status == models.ContractStatusTerminated {
			continue
		}
		sum = sum.Add(job.Price)
		found = true
	}
	if !found {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(sum.Mul(depositShare)), nil
}

func (s *Store) FindProfile(_ context.Context, id int64) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, common.ErrProfileNotFound
	}
	return &p, nil
}

func (s *Store) FindContractForProfile(_ context.Context, contractID, profileID int64) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[contractID]
	if !ok || !c.HasParty(profileID) {
		return nil, common.ErrContractNotFound
	}
	return &c, nil
}

func (s *Store) ListActiveContracts(_ context.Context, profileID int64) ([]models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contracts := []models.Contract{}
	for _, c := range s.contracts {
		if c.Status != models.ContractStatusTerminated && c.HasParty(profileID) {
			contracts = append(contracts, c)
		}
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i].ID < contracts[j].ID })
	return contracts, nil
}

func (s *Store) ListUnpaidJobs(_ context.Context, profileID int64) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := []models.Job{}
	for _, j := range s.jobs {
		c, ok := s.contracts[j.ContractID]
		if j.IsPaid() || !ok || c.Status != models.ContractStatusInProgress || !c.HasParty(profileID) {
			continue
		}
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs, nil
}

// paidInWindow обходит оплаченные в [from, to) работы вместе с их контрактами.
func (s *Store) paidInWindow(from, to time.Time, visit func(models.Job, models.Contract)) {
	for _, j := range s.jobs {
		if !j.IsPaid() || j.PaymentDate == nil {
			continue
		}
		if j.PaymentDate.Before(from) || !j.PaymentDate.Before(to) {
			continue
		}
		if c, ok := s.contracts[j.ContractID]; ok {
			visit(j, c)
		}
	}
}

func (s *Store) BestProfession(_ context.Context, from, to time.Time) (*models.ProfessionEarnings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]decimal.Decimal)
	s.paidInWindow(from, to, func(j models.Job, c models.Contract) {
		if p, ok := s.profiles[c.ContractorID]; ok {
			totals[p.Profession] = totals[p.Profession].Add(j.Price)
		}
	})
	if len(totals) == 0 {
		return nil, nil
	}

	rows := make([]models.ProfessionEarnings, 0, len(totals))
	for profession, total := range totals {
		rows = append(rows, models.ProfessionEarnings{Profession: profession, TotalEarnings: total})
	}
	sort.Slice(rows, func(i, k int) bool {
		if cmp := rows[i].TotalEarnings.Cmp(rows[k].TotalEarnings); cmp != 0 {
			return cmp > 0
		}
		return rows[i].Profession < rows[k].Profession
	})
	return &rows[0], nil
}

func (s *Store) BestClients(_ context.Context, from, to time.Time, limit int) ([]models.ClientPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[int64]decimal.Decimal)
	s.paidInWindow(from, to, func(j models.Job, c models.Contract) {
		totals[c.ClientID] = totals[c.ClientID].Add(j.Price)
	})

	rows := make([]models.ClientPayment, 0, len(totals))
	for id, total := range totals {
		p, ok := s.profiles[id]
		if !ok {
			continue
		}
		rows = append(rows, models.ClientPayment{ID: id, FullName: p.FullName(), Paid: total})
	}
	sort.Slice(rows, func(i, k int) bool {
		if cmp := rows[i].Paid.Cmp(rows[k].Paid); cmp != 0 {
			return cmp > 0
		}
		return rows[i].ID < rows[k].ID
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
