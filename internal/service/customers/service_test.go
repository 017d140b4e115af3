package customers_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newService() *customers.Service {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return customers.NewService(memory.NewCustomerRepository(), logger.WithField("component", "test"))
}

func TestCreateCustomer(t *testing.T) {
	svc := newService()

	customer, err := svc.CreateCustomer(customers.CreateCustomerInput{
		Name:  "Ivan Petrov",
		Email: "ivan@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, customer.ID)

	found, err := svc.FindCustomer(customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "ivan@example.com", found.Email)
}

func TestCreateCustomer_EmailTaken(t *testing.T) {
	svc := newService()

	_, err := svc.CreateCustomer(customers.CreateCustomerInput{Name: "Ivan", Email: "ivan@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(customers.CreateCustomerInput{Name: "Pyotr", Email: "ivan@example.com"})
	require.ErrorIs(t, err, domain.ErrCustomerEmailTaken)
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newService()

	_, err := svc.CreateCustomer(customers.CreateCustomerInput{Email: "ivan@example.com"})
	require.ErrorIs(t, err, domain.ErrCustomerNameRequired)

	_, err = svc.CreateCustomer(customers.CreateCustomerInput{Name: "Ivan"})
	require.ErrorIs(t, err, domain.ErrCustomerEmailRequired)
}

func TestFindCustomer_MissingIsNil(t *testing.T) {
	svc := newService()

	found, err := svc.FindCustomer("ghost")
	require.NoError(t, err)
	require.Nil(t, found)
}
