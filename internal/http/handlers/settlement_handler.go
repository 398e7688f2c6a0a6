package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/models"
)

// Settler проводит расчёты от имени участника.
type Settler interface {
	PayJob(ctx context.Context, actorID, jobID int64) (*models.Job, error)
	Deposit(ctx context.Context, actorID, targetID int64, amount decimal.Decimal) (*models.Profile, error)
}

type SettlementHandler struct {
	settlement Settler
}

func NewSettlementHandler(settlement Settler) *SettlementHandler {
	return &SettlementHandler{settlement: settlement}
}

// DepositRequest тело POST /balances/deposit/:userId.
type DepositRequest struct {
	Deposit *decimal.Decimal `json:"deposit"`
}

// PayJob POST /jobs/:id/pay
func (h *SettlementHandler) PayJob(c *gin.Context) {
	profile, err := common.CurrentProfile(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	jobID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	job, err := h.settlement.PayJob(c.Request.Context(), profile.ID, jobID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// Deposit POST /balances/deposit/:userId
func (h *SettlementHandler) Deposit(c *gin.Context) {
	profile, err := common.CurrentProfile(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	targetID, err := common.ParseIDParam(c, "userId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Deposit == nil {
		common.RespondUnprocessable(c, "deposit должен быть числом")
		return
	}
	if !req.Deposit.IsPositive() {
		common.RespondUnprocessable(c, "deposit должен быть положительным")
		return
	}
	if !req.Deposit.Equal(req.Deposit.Round(models.MoneyScale)) {
		common.RespondUnprocessable(c, "deposit должен содержать не более двух знаков после запятой")
		return
	}

	updated, err := h.settlement.Deposit(c.Request.Context(), profile.ID, targetID, *req.Deposit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
