package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/productcrud/internal/errors"
)

// SQLiteStore implements ProductStore on top of a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new instance of ProductStore backed by SQLite.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

func (s *SQLiteStore) Create(ctx context.Context, name, description string, price int64) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		"INSERT INTO products (name, description, price) VALUES (?, ?, ?) RETURNING "+productColumns,
		name, description, price,
	)
	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int64, name, description string, price int64) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE products SET name = ?, description = ?, price = ? WHERE id = ? RETURNING "+productColumns,
		name, description, price, id,
	)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if n == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

func scanProduct(row *sql.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price); err != nil {
		return nil, err
	}
	return &p, nil
}
