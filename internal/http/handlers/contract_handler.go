package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/models"
)

type ContractReader interface {
	GetContract(ctx context.Context, profileID, contractID int64) (*models.Contract, error)
	ListContracts(ctx context.Context, profileID int64) ([]models.Contract, error)
	ListUnpaidJobs(ctx context.Context, profileID int64) ([]models.Job, error)
}

type ContractHandler struct {
	contracts ContractReader
}

func NewContractHandler(contracts ContractReader) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// GetContract GET /contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	profile, err := common.CurrentProfile(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	contractID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), profile.ID, contractID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// ListContracts GET /contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	profile, err := common.CurrentProfile(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context(), profile.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// ListUnpaidJobs GET /jobs/unpaid
func (h *ContractHandler) ListUnpaidJobs(c *gin.Context) {
	profile, err := common.CurrentProfile(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	jobs, err := h.contracts.ListUnpaidJobs(c.Request.Context(), profile.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}
