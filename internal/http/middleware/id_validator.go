package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
)

// IDValidator проверяет, что параметр пути - положительное целое.
// Использование: router.GET("/contracts/:id", IDValidator("id"), handler.GetContract)
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := common.ParseIDParam(c, paramName); err != nil {
			common.RespondBadRequest(c, "параметр "+paramName+" должен быть положительным целым числом")
			c.Abort()
			return
		}
		c.Next()
	}
}
