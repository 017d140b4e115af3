package memory

import (
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// Create сохраняет нового клиента, если ID ещё не занят.
func (r *customerRepositoryInMemory) Create(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[customer.ID]; exists {
		return fmt.Errorf("customer %s already exists", customer.ID)
	}
	r.items[customer.ID] = customer
	return nil
}

// FindByID возвращает клиента или nil, если его нет.
func (r *customerRepositoryInMemory) FindByID(id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

// FindByEmail возвращает клиента по e-mail или nil, если его нет.
func (r *customerRepositoryInMemory) FindByEmail(email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.items {
		if customer.Email == email {
			c := customer
			return &c, nil
		}
	}
	return nil, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
