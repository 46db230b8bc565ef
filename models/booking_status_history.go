package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatusHistory records one status change of a booking
type BookingStatusHistory struct {
	ID         string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BookingID  string        `json:"bookingId" gorm:"type:varchar(36);not null;index"`
	FromStatus BookingStatus `json:"fromStatus" gorm:"not null"`
	ToStatus   BookingStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  string        `json:"changedBy" gorm:"type:varchar(36);not null"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func (h *BookingStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
