package models

import "time"

// Weekday follows ISO numbering: 1 = Monday ... 7 = Sunday.
// Times are stored as "HH:MM" wall clock.
// At most one active row per (owner, weekday), enforced by a partial unique index.

type BranchHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `gorm:"index:idx_branch_hours_day;uniqueIndex:uq_branch_hours_active_day,where:active;not null" json:"branch_id"`
	Weekday  int  `gorm:"index:idx_branch_hours_day;uniqueIndex:uq_branch_hours_active_day,where:active;not null" json:"weekday"`

	OpenAt  string `gorm:"size:5" json:"open_at"`
	CloseAt string `gorm:"size:5" json:"close_at"`
	Closed  bool   `gorm:"default:false" json:"closed"`
	Active  bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BarberHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_barber_hours_day;uniqueIndex:uq_barber_hours_active_day,where:active;not null" json:"barber_id"`
	Weekday  int  `gorm:"index:idx_barber_hours_day;uniqueIndex:uq_barber_hours_active_day,where:active;not null" json:"weekday"`

	StartAt string `gorm:"size:5" json:"start_at"`
	EndAt   string `gorm:"size:5" json:"end_at"`
	Closed  bool   `gorm:"default:false" json:"closed"`
	Active  bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
