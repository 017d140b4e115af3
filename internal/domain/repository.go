package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента. Возвращает ошибку, если запись с таким ID уже существует.
	Create(customer Customer) error
	// FindByID возвращает клиента или nil, если его нет. Отсутствие — не ошибка.
	FindByID(id string) (*Customer, error)
	// FindByEmail возвращает клиента по e-mail или nil, если его нет.
	FindByEmail(email string) (*Customer, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар.
	Create(product Product) error
	// FindByName возвращает товар по точному имени или nil, если его нет.
	FindByName(name string) (*Product, error)
	// FindAllByID возвращает товары по списку идентификаторов. Порядок результата
	// не гарантирован; отсутствующие идентификаторы просто не попадают в ответ.
	FindAllByID(ids []string) ([]Product, error)
	// DecrementStock списывает указанные количества со склада одной операцией.
	// Если хотя бы для одного товара запрошено больше, чем есть, возвращается
	// InsufficientStockError и ни одна строка не изменяется. Повторы одного
	// идентификатора отклоняются с ErrDuplicateProduct.
	DecrementStock(lines []ProductQuantity) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями как единое целое.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или NotFoundError, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
