package repositories

import (
	"errors"
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// API field name -> column allowlists for products.
var (
	productFilterColumns = map[string]string{
		"name":     "name",
		"price":    "price",
		"provider": "provider_id",
	}
	productSortColumns = map[string]string{
		"name":      "name",
		"price":     "price",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List returns one page of products plus the total match count. The
// referenced provider is resolved into each result when it still exists.
func (r *GORMProductRepository) List(params ListParams) ([]models.Product, int64, error) {
	params = params.Normalized()

	tx, err := applyFilter(r.db.Model(&models.Product{}), params, productFilterColumns)
	if err != nil {
		return nil, 0, err
	}

	// Count runs on its own session so the filter chain stays reusable
	// for the page query below.
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	order, err := orderClause(params, productSortColumns)
	if err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0, params.Limit)
	err = tx.Order(order).
		Offset(params.offset()).
		Limit(params.Limit).
		Preload("Provider").
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID, resolving the referenced
// provider when present.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Provider").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product, generating an id when none is set.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update fully replaces the mutable fields of an existing product. The map
// form is used so zero values (price aside, an empty description or a
// cleared provider) are written too; GORM stamps updated_at.
func (r *GORMProductRepository) Update(product *models.Product) error {
	var existing models.Product
	if err := r.db.First(&existing, "id = ?", product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to load product %s for update: %w", product.ID, err)
	}

	err := r.db.Model(&models.Product{ID: product.ID}).Updates(map[string]interface{}{
		"name":        product.Name,
		"price":       product.Price,
		"description": product.Description,
		"provider_id": product.ProviderID,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
