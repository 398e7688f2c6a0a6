package service

import (
	"context"

	domain "github.com/ignatzorin/freelance-ledger/internal/domain/repository"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
)

// ContractService чтение контрактов и работ от имени участника.
type ContractService struct {
	store domain.ContractStore
}

func NewContractService(store domain.ContractStore) *ContractService {
	return &ContractService{store: store}
}

// GetContract возвращает контракт, если профиль является его стороной.
// Чужой контракт неотличим от несуществующего.
func (s *ContractService) GetContract(ctx context.Context, profileID, contractID int64) (*models.Contract, error) {
	contract, err := s.store.FindContractForProfile(ctx, contractID, profileID)
	if err != nil {
		return nil, toAppError(err, apperror.ErrContractNotFound)
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, profileID int64) ([]models.Contract, error) {
	contracts, err := s.store.ListActiveContracts(ctx, profileID)
	if err != nil {
		return nil, toAppError(err, nil)
	}
	return contracts, nil
}

func (s *ContractService) ListUnpaidJobs(ctx context.Context, profileID int64) ([]models.Job, error) {
	jobs, err := s.store.ListUnpaidJobs(ctx, profileID)
	if err != nil {
		return nil, toAppError(err, nil)
	}
	return jobs, nil
}
