package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is the single rating a client leaves for a completed booking.
// BookingID carries a unique index so concurrent submissions cannot both land.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    *string   `json:"comment"`
	BookingID  string    `json:"bookingId" gorm:"type:varchar(36);uniqueIndex;not null"`
	Booking    *Booking  `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	ClientID   string    `json:"clientId" gorm:"type:varchar(36);not null;index"`
	Client     *User     `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID string    `json:"providerId" gorm:"type:varchar(36);not null;index"`
	Provider   *User     `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
