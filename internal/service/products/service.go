package products

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CreateProductInput — запрос на создание товара.
type CreateProductInput struct {
	Name       string
	PriceMinor int64
	Quantity   int32
}

// Service реализует операции каталога товаров поверх ProductRepository.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "products")
	}
	return &Service{products: products, logger: logger}
}

// CreateProduct валидирует входные данные, проверяет уникальность имени
// и сохраняет товар.
func (s *Service) CreateProduct(in CreateProductInput) (domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       in.Name,
		PriceMinor: in.PriceMinor,
		Quantity:   in.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if errs := product.ValidateInvariants(); len(errs) != 0 {
		return domain.Product{}, errs[0]
	}

	existing, err := s.products.FindByName(in.Name)
	if err != nil {
		return domain.Product{}, err
	}
	if existing != nil {
		return domain.Product{}, domain.ErrProductNameTaken
	}

	if err := s.products.Create(product); err != nil {
		return domain.Product{}, err
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("product created")

	return product, nil
}

// FindByName возвращает товар по точному имени; nil без ошибки, если его нет.
func (s *Service) FindByName(name string) (*domain.Product, error) {
	return s.products.FindByName(name)
}

// DecrementStock валидирует строки списания и делегирует хранилищу.
// Возвращает обновлённые товары; при нехватке стока ничего не списывается.
func (s *Service) DecrementStock(lines []domain.ProductQuantity) ([]domain.Product, error) {
	if len(lines) == 0 {
		return nil, domain.ErrProductsRequired
	}

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if errs := line.Validate(); len(errs) != 0 {
			return nil, errs[0]
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, domain.ErrDuplicateProduct
		}
		seen[line.ProductID] = struct{}{}
	}

	return s.products.DecrementStock(lines)
}
