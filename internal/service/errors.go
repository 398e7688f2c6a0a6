package service

import (
	"context"
	"errors"

	"github.com/ignatzorin/freelance-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-ledger/internal/repository/common"
)

// toAppError приводит ошибку хранилища к ошибке приложения.
// notFound используется для common.ErrNotFound без более точного контекста.
func toAppError(err error, notFound *apperror.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, common.ErrJobNotFound):
		return apperror.ErrJobNotFound
	case errors.Is(err, common.ErrContractNotFound):
		return apperror.ErrContractNotFound
	case errors.Is(err, common.ErrNotFound):
		if notFound != nil {
			return notFound
		}
		return apperror.ErrProfileNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperror.Wrap(err, apperror.ErrCodeInternal, "запрос прерван")
	default:
		return apperror.Wrap(err, apperror.ErrCodeInternal, "внутренняя ошибка сервера")
	}
}
