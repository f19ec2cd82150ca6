package repositories

import (
	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of products matching params, plus the total
	// number of matches independent of the page window.
	List(params ListParams) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	// Update replaces the mutable fields of an existing product. It never
	// creates a product for an unknown id.
	Update(product *models.Product) error
	Delete(id string) error
}
