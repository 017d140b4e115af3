package domain

import "time"

// Customer описывает покупателя. Для оформления заказа важно лишь его существование,
// остальные поля ведутся модулем клиентов.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет обязательные поля клиента.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if c.Email == "" {
		errs = append(errs, ErrCustomerEmailRequired)
	}

	return errs
}
