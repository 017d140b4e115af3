package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит репозитории приложения и ресурсы, требующие закрытия.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository

	store *postgres.Store
}

// NewDependencies собирает репозитории под выбранный storage driver.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if cfg.StorageDriver == StorageDriverPostgres {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("postgres storage initialized")
		return &Dependencies{
			Customers: postgres.NewCustomerRepository(store),
			Products:  postgres.NewProductRepository(store),
			Orders:    postgres.NewOrderRepository(store),
			store:     store,
		}, nil
	}

	logger.Info("in-memory storage initialized")
	return &Dependencies{
		Customers: memory.NewCustomerRepository(),
		Products:  memory.NewProductRepository(),
		Orders:    memory.NewOrderRepository(),
	}, nil
}

// RegisterHealthChecks добавляет проверку хранилища, если оно внешнее.
func (d *Dependencies) RegisterHealthChecks(handler *healthcheck.Handler) {
	if d.store == nil {
		return
	}
	store := d.store
	handler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
		return store.Ping(context.Background())
	}))
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
