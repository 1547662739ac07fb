package factories

import (
	"fmt"

	"github.com/jaswdr/faker"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// CustomerFactory builds the synthetic customer pool orders draw from.
type CustomerFactory struct {
	fake faker.Faker
}

func NewCustomerFactory(fake faker.Faker) *CustomerFactory {
	return &CustomerFactory{fake: fake}
}

func (cf *CustomerFactory) CreateCustomers(n int) []models.Customer {
	customers := make([]models.Customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, models.Customer{
			ID:   fmt.Sprintf("customer_%04d", i+1),
			Name: cf.fake.Person().Name(),
		})
	}
	return customers
}
