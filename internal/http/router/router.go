package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-ledger/internal/config"
	"github.com/ignatzorin/freelance-ledger/internal/http/handlers"
	"github.com/ignatzorin/freelance-ledger/internal/http/middleware"
)

// Handlers набор хэндлеров, которые обслуживает роутер.
type Handlers struct {
	Settlement *handlers.SettlementHandler
	Report     *handlers.ReportHandler
	Contract   *handlers.ContractHandler
	WS         *handlers.WSHandler
	Health     *handlers.HealthHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens middleware.TokenParser,
	profiles middleware.ProfileFinder,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", h.Health.Health)
	r.GET("/ws", h.WS.Handle)

	// Все остальные маршруты выполняются от имени участника из токена.
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens, profiles))
	{
		protected.GET("/contracts", h.Contract.ListContracts)
		protected.GET("/contracts/:id", middleware.IDValidator("id"), h.Contract.GetContract)
		protected.GET("/jobs/unpaid", h.Contract.ListUnpaidJobs)
	}

	settlement := protected.Group("/")
	settlement.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		settlement.POST("/jobs/:id/pay", middleware.IDValidator("id"), h.Settlement.PayJob)
		settlement.POST("/balances/deposit/:userId", middleware.IDValidator("userId"), h.Settlement.Deposit)
	}

	admin := protected.Group("/admin")
	{
		admin.GET("/best-profession", h.Report.BestProfession)
		admin.GET("/best-clients", h.Report.BestClients)
	}

	return r
}
