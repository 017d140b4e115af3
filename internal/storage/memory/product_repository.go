package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return fmt.Errorf("product %s already exists", product.ID)
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[product.ID] = product
	return nil
}

// FindByName возвращает товар по точному имени или nil, если его нет.
func (r *productRepositoryInMemory) FindByName(name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.items {
		if product.Name == name {
			p := product
			return &p, nil
		}
	}
	return nil, nil
}

// FindAllByID возвращает найденные товары; отсутствующие ID просто пропускаются.
func (r *productRepositoryInMemory) FindAllByID(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// DecrementStock списывает сток по всем строкам атомарно: сначала валидация всех строк,
// затем запись. При нехватке стока ни один товар не изменяется. Повторы одного ID
// отклоняются: валидация против снимка не видит накопление списаний.
func (r *productRepositoryInMemory) DecrementStock(lines []domain.ProductQuantity) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.ProductID]; dup {
			return nil, domain.ErrDuplicateProduct
		}
		seen[line.ProductID] = struct{}{}
		product, ok := r.items[line.ProductID]
		if !ok {
			return nil, &domain.NotFoundError{Entity: "product"}
		}
		if line.Qty > product.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Qty,
				Available: product.Quantity,
			}
		}
	}

	now := time.Now().UTC()
	updated := make([]domain.Product, 0, len(lines))
	for _, line := range lines {
		product := r.items[line.ProductID]
		product.Quantity -= line.Qty
		product.UpdatedAt = now
		r.items[line.ProductID] = product
		updated = append(updated, product)
	}
	return updated, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
