package models

// ProfileType константы ролей профиля
const (
	ProfileTypeClient     = "client"
	ProfileTypeContractor = "contractor"
)

// MoneyScale число знаков после запятой в денежных колонках NUMERIC(12,2).
const MoneyScale int32 = 2

// ContractStatus константы статусов контракта
const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)

// ValidContractStatuses список валидных статусов контракта
var ValidContractStatuses = map[string]struct{}{
	ContractStatusNew:        {},
	ContractStatusInProgress: {},
	ContractStatusTerminated: {},
}

// ValidProfileTypes список валидных ролей профиля
var ValidProfileTypes = map[string]struct{}{
	ProfileTypeClient:     {},
	ProfileTypeContractor: {},
}
