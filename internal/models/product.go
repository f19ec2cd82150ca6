package models

import "time"

// Product represents an item in the catalog. The Provider association is a
// soft reference: deleting the referenced provider leaves ProviderID in place
// and the association simply resolves to nil on subsequent reads.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	ProviderID  *string   `json:"provider,omitempty" gorm:"type:varchar(36)" validate:"omitempty,uuid"`
	Provider    *Provider `json:"providerInfo,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
