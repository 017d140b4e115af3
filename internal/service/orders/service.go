package orders

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// CreateOrderInput — запрос на создание заказа: клиент и список пар товар/количество.
type CreateOrderInput struct {
	CustomerID string
	Products   []domain.ProductQuantity
}

// Service реализует воркфлоу создания заказа поверх трёх хранилищ:
// клиентов, товаров и заказов. Зависимости передаются конструктором.
type Service struct {
	orders    domain.OrderRepository
	products  domain.ProductRepository
	customers domain.CustomerRepository
	publisher domain.EventPublisher
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		orders:    orders,
		products:  products,
		customers: customers,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithPublisher создаёт сервис, публикующий события заказов во внешнюю шину.
func NewServiceWithPublisher(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Service {
	svc := NewService(orders, products, customers, logger)
	svc.publisher = publisher
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	customers domain.CustomerRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		orders:    orders,
		products:  products,
		customers: customers,
		logger:    logger,
	}
}

// CreateOrder проверяет запрос, списывает сток и сохраняет заказ с позициями.
// До списания стока никаких записей не происходит; при любой ошибке заказ
// не сохраняется даже частично.
func (s *Service) CreateOrder(in CreateOrderInput) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	if err := validateInput(in); err != nil {
		s.recordFailure(metrics.FailureReasonInvalid)
		return domain.Order{}, err
	}

	customer, err := s.customers.FindByID(in.CustomerID)
	if err != nil {
		s.recordFailure(metrics.FailureReasonStorage)
		return domain.Order{}, err
	}
	if customer == nil {
		s.recordFailure(metrics.FailureReasonCustomerNotFound)
		return domain.Order{}, &domain.NotFoundError{Entity: "customer"}
	}

	ids := make([]string, 0, len(in.Products))
	for _, line := range in.Products {
		ids = append(ids, line.ProductID)
	}

	found, err := s.products.FindAllByID(ids)
	if err != nil {
		s.recordFailure(metrics.FailureReasonStorage)
		return domain.Order{}, err
	}

	// Существование проверяется по множеству идентификаторов, а не по
	// совпадению размеров выборок: каждый запрошенный товар обязан найтись.
	byID := make(map[string]domain.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}
	for _, line := range in.Products {
		if _, ok := byID[line.ProductID]; !ok {
			s.recordFailure(metrics.FailureReasonProductNotFound)
			return domain.Order{}, &domain.NotFoundError{Entity: "product"}
		}
	}

	if _, err = s.products.DecrementStock(in.Products); err != nil {
		if domain.IsInsufficientStock(err) {
			s.recordFailure(metrics.FailureReasonInsufficientStock)
		} else if domain.IsNotFound(err) {
			s.recordFailure(metrics.FailureReasonProductNotFound)
		} else {
			s.recordFailure(metrics.FailureReasonStorage)
		}
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var totalUnits int64
	for _, line := range in.Products {
		product := byID[line.ProductID]
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: product.ID,
			// Цена фиксируется на момент покупки и дальше не пересматривается.
			PriceMinor: product.PriceMinor,
			Qty:        line.Qty,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		totalUnits += int64(line.Qty)
	}

	if err := s.orders.Create(order); err != nil {
		s.recordFailure(metrics.FailureReasonStorage)
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
		s.metrics.RecordStockDecremented(totalUnits)
	}

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"items":       len(order.Items),
		"total_minor": order.TotalMinor(),
	}).Info("order created")

	s.publishOrderCreated(order, in.Products)

	return order, nil
}

// FindOrder возвращает заказ по идентификатору.
func (s *Service) FindOrder(id string) (domain.Order, error) {
	return s.orders.Get(id)
}

// ListByCustomer возвращает заказы клиента.
func (s *Service) ListByCustomer(customerID string, limit int) ([]domain.Order, error) {
	return s.orders.ListByCustomer(customerID, limit)
}

// validateInput проверяет запрос целиком до первого обращения к хранилищам.
func validateInput(in CreateOrderInput) error {
	if in.CustomerID == "" {
		return domain.ErrCustomerRequired
	}
	if len(in.Products) == 0 {
		return domain.ErrProductsRequired
	}

	seen := make(map[string]struct{}, len(in.Products))
	for _, line := range in.Products {
		if errs := line.Validate(); len(errs) != 0 {
			return errs[0]
		}
		if _, dup := seen[line.ProductID]; dup {
			return domain.ErrDuplicateProduct
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// publishOrderCreated отправляет событие best effort: заказ уже сохранён,
// ошибка публикации только логируется.
func (s *Service) publishOrderCreated(order domain.Order, lines []domain.ProductQuantity) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.OrderCreated(order); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order created event")
	}
	if err := s.publisher.StockDecremented(lines); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish stock decremented event")
	}
}

func (s *Service) recordFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed(reason)
	}
}
