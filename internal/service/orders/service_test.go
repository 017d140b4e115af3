package orders_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

type fixture struct {
	svc       *orders.Service
	orders    domain.OrderRepository
	products  domain.ProductRepository
	customers domain.CustomerRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orderRepo := memory.NewOrderRepository()
	productRepo := memory.NewProductRepository()
	customerRepo := memory.NewCustomerRepository()

	return &fixture{
		svc:       orders.NewServiceWithoutMetrics(orderRepo, productRepo, customerRepo, loggerForTests()),
		orders:    orderRepo,
		products:  productRepo,
		customers: customerRepo,
	}
}

func (f *fixture) seedCustomer(t *testing.T, id string) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, f.customers.Create(domain.Customer{
		ID: id, Name: "Ivan Petrov", Email: id + "@example.com",
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) seedProduct(t *testing.T, id, name string, priceMinor int64, qty int32) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, f.products.Create(domain.Product{
		ID: id, Name: name, PriceMinor: priceMinor, Quantity: qty,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) productStock(t *testing.T, id string) int32 {
	t.Helper()

	found, err := f.products.FindAllByID([]string{id})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return found[0].Quantity
}

func TestCreateOrder_Success(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	order, err := f.svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 3}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "customer-1", order.CustomerID)
	require.False(t, order.CreatedAt.IsZero())

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	require.Equal(t, "product-1", item.ProductID)
	require.EqualValues(t, 3, item.Qty)
	require.EqualValues(t, 500, item.PriceMinor)

	require.EqualValues(t, 7, f.productStock(t, "product-1"))

	// Заказ действительно сохранён в хранилище.
	stored, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
}

func TestCreateOrder_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	order, err := f.svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 2}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1000, order.TotalMinor())
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	_, err := f.svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "ghost",
		Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 1}},
	})
	require.True(t, domain.IsNotFound(err))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "customer", nf.Entity)

	// Сток не изменился, заказов нет.
	require.EqualValues(t, 10, f.productStock(t, "product-1"))
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	_, err := f.svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products: []domain.ProductQuantity{
			{ProductID: "product-1", Qty: 1},
			{ProductID: "ghost", Qty: 1},
		},
	})

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "product", nf.Entity)

	require.EqualValues(t, 10, f.productStock(t, "product-1"))
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)
	f.seedProduct(t, "product-2", "mouse", 250, 5)

	_, err := f.svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products: []domain.ProductQuantity{
			{ProductID: "product-1", Qty: 3},
			{ProductID: "product-2", Qty: 100},
		},
	})

	var is *domain.InsufficientStockError
	require.True(t, errors.As(err, &is))
	require.Equal(t, "product-2", is.ProductID)
	require.EqualValues(t, 100, is.Requested)
	require.EqualValues(t, 5, is.Available)

	// Списание атомарно: оба товара остались нетронутыми.
	require.EqualValues(t, 10, f.productStock(t, "product-1"))
	require.EqualValues(t, 5, f.productStock(t, "product-2"))

	// Частичного заказа не осталось.
	list, err := f.orders.ListByCustomer("customer-1", 0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	cases := []struct {
		name string
		in   orders.CreateOrderInput
		want error
	}{
		{
			name: "no customer id",
			in: orders.CreateOrderInput{
				Products: []domain.ProductQuantity{{ProductID: "product-1", Qty: 1}},
			},
			want: domain.ErrCustomerRequired,
		},
		{
			name: "no products",
			in:   orders.CreateOrderInput{CustomerID: "customer-1"},
			want: domain.ErrProductsRequired,
		},
		{
			name: "zero qty",
			in: orders.CreateOrderInput{
				CustomerID: "customer-1",
				Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 0}},
			},
			want: domain.ErrQtyInvalid,
		},
		{
			name: "duplicate product",
			in: orders.CreateOrderInput{
				CustomerID: "customer-1",
				Products: []domain.ProductQuantity{
					{ProductID: "product-1", Qty: 1},
					{ProductID: "product-1", Qty: 2},
				},
			},
			want: domain.ErrDuplicateProduct,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateOrder(tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}

	// Ни одна валидационная ошибка не тронула сток.
	require.EqualValues(t, 10, f.productStock(t, "product-1"))
}

type stubPublisher struct {
	mu         sync.Mutex
	created    []domain.Order
	stockCalls int
	err        error
}

func (s *stubPublisher) OrderCreated(order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, order)
	return s.err
}

func (s *stubPublisher) StockDecremented(lines []domain.ProductQuantity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockCalls++
	return s.err
}

func TestCreateOrder_PublishesEvents(t *testing.T) {
	orderRepo := memory.NewOrderRepository()
	productRepo := memory.NewProductRepository()
	customerRepo := memory.NewCustomerRepository()
	publisher := &stubPublisher{}

	svc := orders.NewServiceWithPublisher(orderRepo, productRepo, customerRepo, publisher, loggerForTests())

	now := time.Now().UTC()
	require.NoError(t, customerRepo.Create(domain.Customer{ID: "customer-1", Name: "n", Email: "e@example.com", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, productRepo.Create(domain.Product{ID: "product-1", Name: "keyboard", PriceMinor: 500, Quantity: 10, CreatedAt: now, UpdatedAt: now}))

	order, err := svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 3}},
	})
	require.NoError(t, err)

	require.Len(t, publisher.created, 1)
	require.Equal(t, order.ID, publisher.created[0].ID)
	require.Equal(t, 1, publisher.stockCalls)
}

func TestCreateOrder_PublisherFailureDoesNotFailOrder(t *testing.T) {
	orderRepo := memory.NewOrderRepository()
	productRepo := memory.NewProductRepository()
	customerRepo := memory.NewCustomerRepository()
	publisher := &stubPublisher{err: errors.New("broker down")}

	svc := orders.NewServiceWithPublisher(orderRepo, productRepo, customerRepo, publisher, loggerForTests())

	now := time.Now().UTC()
	require.NoError(t, customerRepo.Create(domain.Customer{ID: "customer-1", Name: "n", Email: "e@example.com", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, productRepo.Create(domain.Product{ID: "product-1", Name: "keyboard", PriceMinor: 500, Quantity: 10, CreatedAt: now, UpdatedAt: now}))

	order, err := svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 3}},
	})
	require.NoError(t, err)

	stored, err := orderRepo.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, stored.ID)
}

func TestFindOrder(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	created, err := f.svc.CreateOrder(orders.CreateOrderInput{
		CustomerID: "customer-1",
		Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 1}},
	})
	require.NoError(t, err)

	found, err := f.svc.FindOrder(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = f.svc.FindOrder("missing")
	require.True(t, domain.IsNotFound(err))
}

func TestListByCustomer(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "customer-1")
	f.seedProduct(t, "product-1", "keyboard", 500, 10)

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateOrder(orders.CreateOrderInput{
			CustomerID: "customer-1",
			Products:   []domain.ProductQuantity{{ProductID: "product-1", Qty: 1}},
		})
		require.NoError(t, err)
	}

	list, err := f.svc.ListByCustomer("customer-1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
