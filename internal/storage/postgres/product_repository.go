package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, price_minor, quantity, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		product.ID, product.Name, product.PriceMinor, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductNameTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) FindByName(name string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE name = $1
	`, name).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Отсутствие товара с таким именем — валидный пустой результат.
			return nil, nil
		}
		return nil, fmt.Errorf("select product by name: %w", err)
	}
	return &product, nil
}

func (r *productRepository) FindAllByID(ids []string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// Порядок результата определяется базой, не входным списком: вызывающие
	// перекладывают товары в map по идентификатору.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// DecrementStock выполняет списание одной транзакцией: блокирует строки FOR UPDATE,
// валидирует все позиции и только затем пишет. При нехватке стока по любой позиции
// транзакция откатывается целиком. Повторы одного ID отклоняются до открытия
// транзакции: валидация по заблокированному снимку не видит накопление списаний.
func (r *productRepository) DecrementStock(lines []domain.ProductQuantity) ([]domain.Product, error) {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.ProductID]; dup {
			return nil, domain.ErrDuplicateProduct
		}
		seen[line.ProductID] = struct{}{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}

	locked, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(locked))
	for _, product := range locked {
		byID[product.ID] = product
	}

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			err = &domain.NotFoundError{Entity: "product"}
			return nil, err
		}
		if line.Qty > product.Quantity {
			err = &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Qty,
				Available: product.Quantity,
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	updated := make([]domain.Product, 0, len(lines))
	for _, line := range lines {
		product := byID[line.ProductID]
		product.Quantity -= line.Qty
		product.UpdatedAt = now
		if _, err = tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = $1,
			    updated_at = $2
			WHERE id = $3
		`, product.Quantity, product.UpdatedAt, product.ID); err != nil {
			return nil, fmt.Errorf("update product stock: %w", err)
		}
		byID[line.ProductID] = product
		updated = append(updated, product)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit decrement stock: %w", err)
	}

	return updated, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.ProductRepository = (*productRepository)(nil)
