package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
)

// RateLimitMiddleware ограничивает число запросов участника за период.
// Ключ - id профиля, если запрос уже авторизован, иначе IP.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 60
	}
	if period <= 0 {
		period = time.Minute
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: period,
		Limit:  limit,
	})

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if profile, err := common.CurrentProfile(c); err == nil {
			key = "profile:" + strconv.FormatInt(profile.ID, 10)
		}

		lctx, err := instance.Get(c.Request.Context(), key)
		if err != nil {
			_ = c.Error(apperror.Wrap(err, apperror.ErrCodeInternal, "rate limiter недоступен"))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Error: "слишком много запросов, попробуйте позже",
				Code:  apperror.ErrCodeRateLimited,
			})
			return
		}

		c.Next()
	}
}
