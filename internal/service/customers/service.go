package customers

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CreateCustomerInput — запрос на регистрацию клиента.
type CreateCustomerInput struct {
	Name  string
	Email string
}

// Service реализует операции над клиентами поверх CustomerRepository.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService создаёт сервис клиентов.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customers")
	}
	return &Service{customers: customers, logger: logger}
}

// CreateCustomer валидирует входные данные, проверяет уникальность e-mail
// и сохраняет клиента.
func (s *Service) CreateCustomer(in CreateCustomerInput) (domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if errs := customer.ValidateInvariants(); len(errs) != 0 {
		return domain.Customer{}, errs[0]
	}

	existing, err := s.customers.FindByEmail(in.Email)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing != nil {
		return domain.Customer{}, domain.ErrCustomerEmailTaken
	}

	if err := s.customers.Create(customer); err != nil {
		return domain.Customer{}, err
	}

	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("customer created")

	return customer, nil
}

// FindCustomer возвращает клиента по идентификатору; nil без ошибки, если его нет.
func (s *Service) FindCustomer(id string) (*domain.Customer, error) {
	return s.customers.FindByID(id)
}
