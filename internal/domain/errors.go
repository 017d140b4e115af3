package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего идентификатора клиента в запросе на заказ.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrProductsRequired = errors.New("order must contain at least one product")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrProductIDRequired = errors.New("product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrQtyInvalid = errors.New("qty must be greater than zero")
	// Ошибка повторяющегося идентификатора товара в одном запросе.
	ErrDuplicateProduct = errors.New("duplicate product_id in request")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrPriceNegative = errors.New("price_minor must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrQuantityNegative = errors.New("quantity must be non-negative")
	// Ошибка занятого имени товара: имена товаров уникальны.
	ErrProductNameTaken = errors.New("product name already taken")
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего e-mail клиента.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// Ошибка занятого e-mail: адреса клиентов уникальны.
	ErrCustomerEmailTaken = errors.New("customer email already taken")
)

// NotFoundError — бизнес-ошибка «сущность не найдена» (customer, product, order).
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// InsufficientStockError — бизнес-ошибка: запрошено больше, чем есть на складе.
type InsufficientStockError struct {
	ProductID string
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInsufficientStock проверяет, является ли ошибка нехваткой стока.
func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}

// IsValidation проверяет, относится ли ошибка к валидации входных данных.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrCustomerRequired, ErrProductsRequired, ErrProductIDRequired,
		ErrQtyInvalid, ErrDuplicateProduct, ErrProductNameRequired,
		ErrPriceNegative, ErrQuantityNegative, ErrCustomerNameRequired,
		ErrCustomerEmailRequired,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
