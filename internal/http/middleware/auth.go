package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
	storecommon "github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

// TokenParser извлекает id профиля из access токена.
type TokenParser interface {
	ParseAccess(token string) (int64, error)
}

// ProfileFinder загружает профиль по id.
type ProfileFinder interface {
	FindProfile(ctx context.Context, id int64) (*models.Profile, error)
}

// AuthMiddleware определяет участника по Bearer токену и кладёт его профиль в контекст.
// Нет токена, токен невалиден или профиль удалён: 401.
func AuthMiddleware(tokens TokenParser, profiles ProfileFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			_ = c.Error(apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		profileID, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			_ = c.Error(apperror.Wrap(err, apperror.ErrCodeUnauthorized, "токен невалиден"))
			c.Abort()
			return
		}

		profile, err := profiles.FindProfile(c.Request.Context(), profileID)
		if err != nil {
			if errors.Is(err, storecommon.ErrNotFound) {
				_ = c.Error(apperror.Wrap(err, apperror.ErrCodeUnauthorized, "профиль не найден"))
			} else {
				_ = c.Error(apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить профиль"))
			}
			c.Abort()
			return
		}

		c.Set(common.ContextProfileKey, profile)
		c.Next()
	}
}
