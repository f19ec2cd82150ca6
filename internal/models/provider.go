package models

import "time"

// Provider represents a supplier of catalog products.
// Address is nullable in the schema; the write path requires it (see handlers).
type Provider struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Address     string    `json:"address" validate:"omitempty,max=255"`
	Phone       string    `json:"phone" validate:"omitempty,max=30"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
