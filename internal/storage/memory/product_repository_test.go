package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newProduct(id, name string, qty int32) domain.Product {
	now := time.Now().UTC()
	return domain.Product{
		ID:         id,
		Name:       name,
		PriceMinor: 500,
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestProductRepository_CreateFindByName(t *testing.T) {
	repo := memory.NewProductRepository()

	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByName("keyboard")
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if found == nil || found.ID != "product-1" {
		t.Fatalf("expected product-1, got %+v", found)
	}
}

func TestProductRepository_FindByName_Missing(t *testing.T) {
	repo := memory.NewProductRepository()

	found, err := repo.FindByName("ghost")
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for missing name, got %+v", found)
	}
}

func TestProductRepository_FindAllByID(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newProduct("product-2", "mouse", 3)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindAllByID([]string{"product-1", "product-2", "missing"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 products, got %d", len(found))
	}
}

func TestProductRepository_DecrementStock(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := repo.DecrementStock([]domain.ProductQuantity{{ProductID: "product-1", Qty: 3}})
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if len(updated) != 1 || updated[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %+v", updated)
	}
}

func TestProductRepository_DecrementStock_DuplicateID(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Повтор одного ID суммарно превышает сток и не должен пройти валидацию.
	_, err := repo.DecrementStock([]domain.ProductQuantity{
		{ProductID: "product-1", Qty: 6},
		{ProductID: "product-1", Qty: 6},
	})
	if !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("expected duplicate product error, got %v", err)
	}

	found, err := repo.FindAllByID([]string{"product-1"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(found) != 1 || found[0].Quantity != 10 {
		t.Fatalf("expected stock 10 untouched, got %+v", found)
	}
}

func TestProductRepository_DecrementStock_AllOrNothing(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newProduct("product-2", "mouse", 5)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := repo.DecrementStock([]domain.ProductQuantity{
		{ProductID: "product-1", Qty: 3},
		{ProductID: "product-2", Qty: 100},
	})
	if !domain.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	// Первый товар не должен быть списан.
	found, err := repo.FindAllByID([]string{"product-1"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(found) != 1 || found[0].Quantity != 10 {
		t.Fatalf("expected stock 10 untouched, got %+v", found)
	}
}
