package apperror

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	ErrCodeInsufficientFunds    ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeDepositLimitExceeded ErrorCode = "DEPOSIT_LIMIT_EXCEEDED"
	ErrCodeValidation           ErrorCode = "VALIDATION_ERROR"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
	ErrCodeRateLimited          ErrorCode = "RATE_LIMITED"
)

// AppError ошибка со стабильным кодом. HTTP статус по коду выбирает только
// транспортный слой.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал с преднастроенными значениями.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// CodeOf возвращает код ошибки; для посторонних ошибок - ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsInsufficientFunds(err error) bool {
	return CodeOf(err) == ErrCodeInsufficientFunds
}

func IsDepositLimitExceeded(err error) bool {
	return CodeOf(err) == ErrCodeDepositLimitExceeded
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

var (
	ErrJobNotFound           = New(ErrCodeNotFound, "работа не найдена")
	ErrContractNotFound      = New(ErrCodeNotFound, "контракт не найден")
	ErrClientNotFound        = New(ErrCodeNotFound, "профиль клиента не найден")
	ErrContractorNotFound    = New(ErrCodeNotFound, "профиль исполнителя не найден")
	ErrProfileNotFound       = New(ErrCodeNotFound, "профиль не найден")
	ErrReceiverNotFound      = New(ErrCodeNotFound, "профиль получателя не найден")
	ErrInsufficientFunds     = New(ErrCodeInsufficientFunds, "недостаточно средств")
	ErrDepositExceedsLimit   = New(ErrCodeDepositLimitExceeded, "сумма превышает допустимый лимит пополнения")
	ErrDepositExceedsBalance = New(ErrCodeInsufficientFunds, "сумма превышает баланс")
	ErrUnauthorized          = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrInternal              = New(ErrCodeInternal, "внутренняя ошибка сервера")
)
