package repositories

import (
	"katalog/internal/models"
)

// ProviderRepository defines the interface for provider data access.
type ProviderRepository interface {
	List(params ListParams) ([]models.Provider, int64, error)
	GetByID(id string) (*models.Provider, error)
	Create(provider *models.Provider) error
	Update(provider *models.Provider) error
	Delete(id string) error
}
