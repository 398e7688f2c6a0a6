package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ignatzorin/freelance-ledger/internal/models"
)

// SeedDemo заполняет хранилище демонстрационными данными для режима STORE_DRIVER=memory.
func SeedDemo(s *Store) {
	money := decimal.RequireFromString

	clients := []models.Profile{
		{ID: 1, FirstName: "Harry", LastName: "Potter", Profession: "Wizard", Balance: money("1150"), Type: models.ProfileTypeClient},
		{ID: 2, FirstName: "Mr", LastName: "Robot", Profession: "Hacker", Balance: money("231.11"), Type: models.ProfileTypeClient},
		{ID: 3, FirstName: "John", LastName: "Snow", Profession: "Knows nothing", Balance: money("451.3"), Type: models.ProfileTypeClient},
		{ID: 4, FirstName: "Ash", LastName: "Kethcum", Profession: "Pokemon master", Balance: money("1.3"), Type: models.ProfileTypeClient},
	}
	contractors := []models.Profile{
		{ID: 5, FirstName: "John", LastName: "Lenon", Profession: "Musician", Balance: money("64"), Type: models.ProfileTypeContractor},
		{ID: 6, FirstName: "Linus", LastName: "Torvalds", Profession: "Programmer", Balance: money("1214"), Type: models.ProfileTypeContractor},
		{ID: 7, FirstName: "Alan", LastName: "Turing", Profession: "Programmer", Balance: money("22"), Type: models.ProfileTypeContractor},
		{ID: 8, FirstName: "Aragorn", LastName: "II Elessar Telcontarvalds", Profession: "Fighter", Balance: money("314"), Type: models.ProfileTypeContractor},
	}
	for _, p := range append(clients, contractors...) {
		if err := p.Validate(); err != nil {
			panic(err)
		}
		s.AddProfile(p)
	}

	contracts := []models.Contract{
		{ID: 1, Terms: "bla bla bla", Status: models.ContractStatusTerminated, ClientID: 1, ContractorID: 5},
		{ID: 2, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 1, ContractorID: 6},
		{ID: 3, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 2, ContractorID: 6},
		{ID: 4, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 2, ContractorID: 7},
		{ID: 5, Terms: "bla bla bla", Status: models.ContractStatusNew, ClientID: 3, ContractorID: 8},
		{ID: 6, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 3, ContractorID: 7},
		{ID: 7, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 4, ContractorID: 7},
		{ID: 8, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 4, ContractorID: 6},
		{ID: 9, Terms: "bla bla bla", Status: models.ContractStatusInProgress, ClientID: 4, ContractorID: 8},
	}
	for _, c := range contracts {
		if err := c.Validate(); err != nil {
			panic(err)
		}
		s.AddContract(c)
	}

	paidAt := func(value string) *time.Time {
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			panic(err)
		}
		return &ts
	}

	jobs := []models.Job{
		{ID: 1, Description: "work", Price: money("200"), ContractID: 1},
		{ID: 2, Description: "work", Price: money("201"), ContractID: 2},
		{ID: 3, Description: "work", Price: money("202"), ContractID: 3},
		{ID: 4, Description: "work", Price: money("200"), ContractID: 4},
		{ID: 5, Description: "work", Price: money("200"), ContractID: 7},
		{ID: 6, Description: "work", Price: money("2020"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-15T19:11:26.737Z"), ContractID: 7},
		{ID: 7, Description: "work", Price: money("200"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-15T19:11:26.737Z"), ContractID: 2},
		{ID: 8, Description: "work", Price: money("200"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-16T19:11:26.737Z"), ContractID: 3},
		{ID: 9, Description: "work", Price: money("200"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-17T19:11:26.737Z"), ContractID: 1},
		{ID: 10, Description: "work", Price: money("200"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-17T19:11:26.737Z"), ContractID: 5},
		{ID: 11, Description: "work", Price: money("21"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-10T19:11:26.737Z"), ContractID: 1},
		{ID: 12, Description: "work", Price: money("21"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-15T19:11:26.737Z"), ContractID: 2},
		{ID: 13, Description: "work", Price: money("121"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-15T19:11:26.737Z"), ContractID: 3},
		{ID: 14, Description: "work", Price: money("121"), Paid: models.PaymentPaid, PaymentDate: paidAt("2020-08-14T23:11:26.737Z"), ContractID: 3},
	}
	for _, j := range jobs {
		s.AddJob(j)
	}
}
