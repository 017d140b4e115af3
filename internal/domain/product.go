package domain

import "time"

// Product описывает товар на складе магазина.
type Product struct {
	ID string
	// Name — уникальное имя товара.
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// Quantity — остаток товара на складе; не может быть отрицательным.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrPriceNegative)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrQuantityNegative)
	}

	return errs
}

// ProductQuantity — пара «товар/количество» в запросе на заказ или списание стока.
type ProductQuantity struct {
	ProductID string
	Qty       int32
}

// Validate проверяет корректность пары.
func (pq *ProductQuantity) Validate() []error {
	var errs []error

	if pq.ProductID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if pq.Qty <= 0 {
		errs = append(errs, ErrQtyInvalid)
	}

	return errs
}
