package models

import "time"

// BarberBreak repeats every week on Weekday (1 = Monday ... 7 = Sunday).
type BarberBreak struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`
	Weekday  int  `gorm:"not null" json:"weekday"`

	StartAt string `gorm:"size:5;not null" json:"start_at"`
	EndAt   string `gorm:"size:5;not null" json:"end_at"`
	Reason  string `gorm:"size:255" json:"reason"`
	Active  bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
