package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lenscart/backend/internal/domain"
)

// SQLiteRepository provides read access to a SQLite product catalog
type SQLiteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository opens the catalog database and ensures the schema exists
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	return repo, nil
}

// initSchema creates the products table if it does not exist
func (r *SQLiteRepository) initSchema() error {
	schema := `CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		categories TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		permalink TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'publish',
		published_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	return nil
}

const productColumns = "id, name, categories, tags, image_url, permalink, status, published_at"

// ListPublished returns up to limit published products in catalog order
func (r *SQLiteRepository) ListPublished(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE status = ? ORDER BY id LIMIT ?", productColumns)

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, domain.StatusPublished, limit); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return products, nil
}

// ListRecent returns up to limit products ordered by publish date descending.
// No status filter: the recency fallback shows anything the catalog lists.
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products ORDER BY published_at DESC, id DESC LIMIT ?", productColumns)

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return products, nil
}

// Save inserts or replaces a product. Used by catalog import tooling and
// tests; the search pipeline itself never writes.
func (r *SQLiteRepository) Save(ctx context.Context, p *domain.Product) error {
	query := `INSERT OR REPLACE INTO products
		(id, name, categories, tags, image_url, permalink, status, published_at)
		VALUES (:id, :name, :categories, :tags, :image_url, :permalink, :status, :published_at)`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	return nil
}

// Close closes the underlying database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
