package services

import (
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/pkg/events"
)

// ProviderService handles business logic related to providers.
type ProviderService struct {
	repo     repositories.ProviderRepository
	mqClient *events.Client
}

// NewProviderService creates a new ProviderService. mqClient may be nil.
func NewProviderService(repo repositories.ProviderRepository, mqClient *events.Client) *ProviderService {
	return &ProviderService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListProviders returns one page of providers and the total page count.
func (s *ProviderService) ListProviders(params repositories.ListParams) ([]models.Provider, int64, error) {
	params = params.Normalized()
	providers, total, err := s.repo.List(params)
	if err != nil {
		return nil, 0, err
	}
	return providers, totalPages(total, params.Limit), nil
}

// GetProviderByID retrieves a single provider by its ID.
func (s *ProviderService) GetProviderByID(id string) (*models.Provider, error) {
	return s.repo.GetByID(id)
}

// CreateProvider creates a new provider and publishes a change event.
func (s *ProviderService) CreateProvider(provider *models.Provider) error {
	if err := s.repo.Create(provider); err != nil {
		return err
	}
	s.publish("created", provider.ID)
	return nil
}

// UpdateProvider replaces an existing provider's fields and returns the
// stored result.
func (s *ProviderService) UpdateProvider(provider *models.Provider) (*models.Provider, error) {
	if err := s.repo.Update(provider); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetByID(provider.ID)
	if err != nil {
		return nil, err
	}
	s.publish("updated", provider.ID)
	return updated, nil
}

// DeleteProvider deletes a provider by its ID. Products referencing the
// provider keep their reference; it resolves to nothing on later reads.
func (s *ProviderService) DeleteProvider(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

func (s *ProviderService) publish(action, id string) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishChange("provider", action, id); err != nil {
		log.Printf("Warning: failed to publish provider %s event for %s: %v", action, id, err)
	}
}
