package models

import "time"

// Service is a catalog item that can be booked. BranchID nil means every branch.
type Service struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	BranchID *uint `gorm:"index" json:"branch_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	// code used by the mall integration
	ExternalCode *string `gorm:"size:64;uniqueIndex" json:"external_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
