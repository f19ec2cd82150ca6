package repositories

import (
	"errors"
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	providerFilterColumns = map[string]string{
		"name":    "name",
		"address": "address",
		"phone":   "phone",
	}
	providerSortColumns = map[string]string{
		"name":      "name",
		"address":   "address",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

// GORMProviderRepository is a GORM implementation of ProviderRepository.
type GORMProviderRepository struct {
	db *gorm.DB
}

// NewGORMProviderRepository creates a new instance of GORMProviderRepository.
func NewGORMProviderRepository(db *gorm.DB) *GORMProviderRepository {
	return &GORMProviderRepository{
		db: db,
	}
}

// List returns one page of providers plus the total match count.
func (r *GORMProviderRepository) List(params ListParams) ([]models.Provider, int64, error) {
	params = params.Normalized()

	tx, err := applyFilter(r.db.Model(&models.Provider{}), params, providerFilterColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count providers: %w", err)
	}

	order, err := orderClause(params, providerSortColumns)
	if err != nil {
		return nil, 0, err
	}

	providers := make([]models.Provider, 0, params.Limit)
	err = tx.Order(order).
		Offset(params.offset()).
		Limit(params.Limit).
		Find(&providers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, total, nil
}

// GetByID retrieves a single provider by its ID.
func (r *GORMProviderRepository) GetByID(id string) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.First(&provider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to get provider by ID %s: %w", id, err)
	}
	return &provider, nil
}

// Create creates a new provider, generating an id when none is set.
func (r *GORMProviderRepository) Create(provider *models.Provider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if err := r.db.Create(provider).Error; err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// Update fully replaces the mutable fields of an existing provider.
func (r *GORMProviderRepository) Update(provider *models.Provider) error {
	var existing models.Provider
	if err := r.db.First(&existing, "id = ?", provider.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProviderNotFound
		}
		return fmt.Errorf("failed to load provider %s for update: %w", provider.ID, err)
	}

	err := r.db.Model(&models.Provider{ID: provider.ID}).Updates(map[string]interface{}{
		"name":        provider.Name,
		"address":     provider.Address,
		"phone":       provider.Phone,
		"description": provider.Description,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", provider.ID, err)
	}
	return nil
}

// Delete deletes a provider by its ID. Products referencing it are left
// untouched; their reference dangles until they are updated.
func (r *GORMProviderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Provider{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete provider %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProviderNotFound
	}
	return nil
}
