package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/models"
)

// Reporter административные отчёты по оплаченным работам.
type Reporter interface {
	BestProfession(ctx context.Context, start, end time.Time) (*models.ProfessionEarnings, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]models.ClientPayment, error)
	DefaultLimit() int
}

type ReportHandler struct {
	reports Reporter
}

func NewReportHandler(reports Reporter) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Форматы ISO-8601, которые принимают start и end.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

func parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	common.RespondBadRequest(c, key+" must be a valid date")
	return time.Time{}, false
}

func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, ok := parseDateQuery(c, "start")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseDateQuery(c, "end")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// BestProfession GET /admin/best-profession?start=&end=
func (h *ReportHandler) BestProfession(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	best, err := h.reports.BestProfession(c.Request.Context(), start, end)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if best == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, best)
}

// BestClients GET /admin/best-clients?start=&end=&limit=
func (h *ReportHandler) BestClients(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	limit := h.reports.DefaultLimit()
	if raw, present := c.GetQuery("limit"); present {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			common.RespondBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	clients, err := h.reports.BestClients(c.Request.Context(), start, end, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, clients)
}
