package services

import (
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/pkg/events"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *events.Client
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case catalog events are not published.
func NewProductService(repo repositories.ProductRepository, mqClient *events.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListProducts returns one page of products and the total page count for the
// given filter. totalPages is 0 when nothing matches and 1 when the limit
// exceeds the match count.
func (s *ProductService) ListProducts(params repositories.ListParams) ([]models.Product, int64, error) {
	params = params.Normalized()
	products, total, err := s.repo.List(params)
	if err != nil {
		return nil, 0, err
	}
	return products, totalPages(total, params.Limit), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product and publishes a change event.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish("created", product.ID)
	return nil
}

// UpdateProduct replaces an existing product's fields and returns the stored
// result with its provider reference resolved.
func (s *ProductService) UpdateProduct(product *models.Product) (*models.Product, error) {
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetByID(product.ID)
	if err != nil {
		return nil, err
	}
	s.publish("updated", product.ID)
	return updated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

// publish emits a catalog change event. Broker failures are logged and never
// surfaced to the caller; the write has already been committed.
func (s *ProductService) publish(action, id string) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishChange("product", action, id); err != nil {
		log.Printf("Warning: failed to publish product %s event for %s: %v", action, id, err)
	}
}

// totalPages computes ceil(total / limit) in integer math.
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
