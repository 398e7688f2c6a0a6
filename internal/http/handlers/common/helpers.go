package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-ledger/internal/models"
	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
)

// ContextProfileKey ключ gin.Context, под которым лежит профиль текущего участника.
const ContextProfileKey = "profile"

var (
	// ErrProfileNotInContext профиль не установлен middleware авторизации.
	ErrProfileNotInContext = errors.New("профиль не найден в контексте")

	// ErrInvalidID параметр пути не является положительным целым.
	ErrInvalidID = errors.New("неверный формат идентификатора")
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string             `json:"error"`
	Code  apperror.ErrorCode `json:"code,omitempty"`
}

var statusByCode = map[apperror.ErrorCode]int{
	apperror.ErrCodeNotFound:             http.StatusNotFound,
	apperror.ErrCodeUnauthorized:         http.StatusUnauthorized,
	apperror.ErrCodeInsufficientFunds:    http.StatusUnprocessableEntity,
	apperror.ErrCodeDepositLimitExceeded: http.StatusUnprocessableEntity,
	apperror.ErrCodeValidation:           http.StatusBadRequest,
	apperror.ErrCodeInternal:             http.StatusInternalServerError,
	apperror.ErrCodeRateLimited:          http.StatusTooManyRequests,
}

// StatusFor HTTP статус для кода ошибки приложения.
func StatusFor(code apperror.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// CurrentProfile извлекает профиль участника из контекста.
func CurrentProfile(c *gin.Context) (*models.Profile, error) {
	raw, exists := c.Get(ContextProfileKey)
	if !exists {
		return nil, ErrProfileNotInContext
	}

	profile, ok := raw.(*models.Profile)
	if !ok || profile == nil {
		return nil, ErrProfileNotInContext
	}

	return profile, nil
}

// ParseIDParam читает положительный целочисленный идентификатор из пути.
func ParseIDParam(c *gin.Context, paramName string) (int64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// RespondError отправляет ошибку в стандартном формате.
func RespondError(c *gin.Context, statusCode int, code apperror.ErrorCode, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message, Code: code})
}

// RespondAppError отправляет ошибку приложения; внутренние ошибки маскируются.
func RespondAppError(c *gin.Context, err error) {
	code := apperror.CodeOf(err)
	message := "внутренняя ошибка сервера"

	var appErr *apperror.AppError
	if code != apperror.ErrCodeInternal && errors.As(err, &appErr) {
		message = appErr.Message
	}

	RespondError(c, StatusFor(code), code, message)
}

// RespondBadRequest отправляет 400 с кодом VALIDATION_ERROR.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, apperror.ErrCodeValidation, message)
}

// RespondUnprocessable отправляет 422 с кодом VALIDATION_ERROR.
func RespondUnprocessable(c *gin.Context, message string) {
	RespondError(c, http.StatusUnprocessableEntity, apperror.ErrCodeValidation, message)
}

// RespondUnauthorized отправляет 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}
