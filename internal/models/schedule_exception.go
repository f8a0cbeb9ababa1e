package models

import "time"

const (
	ExceptionBranchClosed       = "BRANCH_CLOSED"
	ExceptionBarberAbsent       = "BARBER_ABSENT"
	ExceptionBranchSpecialHours = "BRANCH_SPECIAL_HOURS"
	ExceptionBarberSpecialHours = "BARBER_SPECIAL_HOURS"
)

type ScheduleException struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Kind string `gorm:"size:32;not null;index" json:"kind"`

	BranchID *uint `gorm:"index" json:"branch_id,omitempty"`
	BarberID *uint `gorm:"index" json:"barber_id,omitempty"`

	DateStart time.Time  `gorm:"type:date;not null" json:"date_start"`
	DateEnd   *time.Time `gorm:"type:date" json:"date_end,omitempty"`

	// only for special hours
	OpenAt  *string `gorm:"size:5" json:"open_at,omitempty"`
	CloseAt *string `gorm:"size:5" json:"close_at,omitempty"`

	Reason string `gorm:"size:255" json:"reason"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
