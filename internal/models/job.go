package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState состояние оплаты работы. В БД хранится как nullable boolean:
// NULL - не оплачена, TRUE - оплачена. FALSE запрещён схемой.
type PaymentState int

const (
	PaymentUnpaid PaymentState = iota
	PaymentPaid
)

func (s PaymentState) String() string {
	if s == PaymentPaid {
		return "paid"
	}
	return "unpaid"
}

// Scan реализует sql.Scanner.
func (s *PaymentState) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = PaymentUnpaid
		return nil
	case bool:
		if !v {
			return fmt.Errorf("models: недопустимое значение paid=false")
		}
		*s = PaymentPaid
		return nil
	default:
		return fmt.Errorf("models: неподдерживаемый тип paid %T", src)
	}
}

// Value реализует driver.Valuer.
func (s PaymentState) Value() (driver.Value, error) {
	if s == PaymentPaid {
		return true, nil
	}
	return nil, nil
}

// MarshalJSON отдаёт true для оплаченной работы и null для неоплаченной.
func (s PaymentState) MarshalJSON() ([]byte, error) {
	if s == PaymentPaid {
		return []byte("true"), nil
	}
	return []byte("null"), nil
}

// UnmarshalJSON принимает true или null.
func (s *PaymentState) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*s = PaymentUnpaid
		return nil
	}
	if !*v {
		return fmt.Errorf("models: недопустимое значение paid=false")
	}
	*s = PaymentPaid
	return nil
}

// Job работа в рамках контракта.
type Job struct {
	ID          int64           `db:"id" json:"id"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Paid        PaymentState    `db:"paid" json:"paid"`
	PaymentDate *time.Time      `db:"payment_date" json:"payment_date"`
	ContractID  int64           `db:"contract_id" json:"contract_id"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// IsPaid сообщает, оплачена ли работа.
func (j *Job) IsPaid() bool {
	return j.Paid == PaymentPaid
}

// PayableJob работа, заблокированная для оплаты, вместе со сторонами контракта.
type PayableJob struct {
	Job
	ClientID     int64 `db:"client_id"`
	ContractorID int64 `db:"contractor_id"`
}
