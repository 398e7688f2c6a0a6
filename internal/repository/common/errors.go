package common

import (
	"errors"
	"fmt"
)

// Общие ошибки для всех репозиториев
var (
	ErrNotFound         = errors.New("entity not found")
	ErrJobNotFound      = fmt.Errorf("job: %w", ErrNotFound)
	ErrProfileNotFound  = fmt.Errorf("profile: %w", ErrNotFound)
	ErrContractNotFound = fmt.Errorf("contract: %w", ErrNotFound)
)
