package domain

import "time"

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID      string
	OrderID string
	// ProductID — ссылка на товар.
	ProductID string
	// PriceMinor — цена за единицу на момент покупки; при изменении цены товара
	// позиция не пересчитывается.
	PriceMinor int64
	// Qty — количество единиц товара.
	Qty       int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order агрегирует заказ клиента и его позиции. Заказ создаётся целиком один раз
// и после создания этим модулем не изменяется.
type Order struct {
	ID         string
	CustomerID string
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TotalMinor возвращает сумму заказа в минимальных единицах: qty * price по позициям.
func (o *Order) TotalMinor() int64 {
	var total int64
	for _, item := range o.Items {
		total += int64(item.Qty) * item.PriceMinor
	}
	return total
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrProductsRequired)
	}

	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrProductIDRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrPriceNegative)
		}
	}

	return errs
}
