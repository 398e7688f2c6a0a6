package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Profile описывает участника площадки: клиента или исполнителя.
type Profile struct {
	ID         int64           `db:"id" json:"id"`
	FirstName  string          `db:"first_name" json:"first_name"`
	LastName   string          `db:"last_name" json:"last_name"`
	Profession string          `db:"profession" json:"profession"`
	Balance    decimal.Decimal `db:"balance" json:"balance"`
	Type       string          `db:"type" json:"type"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// FullName возвращает имя и фамилию через пробел.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Validate проверяет роль и неотрицательность баланса.
func (p *Profile) Validate() error {
	if _, ok := ValidProfileTypes[p.Type]; !ok {
		return fmt.Errorf("models: неизвестная роль профиля %q", p.Type)
	}
	if p.Balance.IsNegative() {
		return fmt.Errorf("models: отрицательный баланс профиля %d", p.ID)
	}
	return nil
}
