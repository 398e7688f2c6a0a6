package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/logger"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
)

// ErrorHandler превращает последнюю ошибку из c.Errors в ответ.
// Внутренние ошибки логируются целиком, а клиенту уходит общее сообщение.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		code := apperror.CodeOf(err)

		entry := logger.Log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"code":       code,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		})
		if code == apperror.ErrCodeInternal {
			entry.Error("request failed")
		} else {
			entry.Debug("request rejected")
		}

		common.RespondAppError(c, err)
	}
}
