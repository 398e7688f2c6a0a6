package models

import "github.com/shopspring/decimal"

// ProfessionEarnings сумма оплаченных работ по профессии исполнителя.
type ProfessionEarnings struct {
	Profession    string          `db:"profession" json:"profession"`
	TotalEarnings decimal.Decimal `db:"total_earnings" json:"total_earnings"`
}

// ClientPayment сумма, оплаченная клиентом за период.
type ClientPayment struct {
	ID       int64           `db:"id" json:"id"`
	FullName string          `db:"full_name" json:"full_name"`
	Paid     decimal.Decimal `db:"paid" json:"paid"`
}
