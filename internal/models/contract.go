package models

import (
	"fmt"
	"time"
)

// Contract связывает ровно одного клиента и одного исполнителя.
type Contract struct {
	ID           int64     `db:"id" json:"id"`
	Terms        string    `db:"terms" json:"terms"`
	Status       string    `db:"status" json:"status"`
	ClientID     int64     `db:"client_id" json:"client_id"`
	ContractorID int64     `db:"contractor_id" json:"contractor_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HasParty сообщает, участвует ли профиль в контракте.
func (c *Contract) HasParty(profileID int64) bool {
	return c.ClientID == profileID || c.ContractorID == profileID
}

func (c *Contract) Validate() error {
	if _, ok := ValidContractStatuses[c.Status]; !ok {
		return fmt.Errorf("models: неизвестный статус контракта %q", c.Status)
	}
	return nil
}
