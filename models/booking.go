package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents all possible states of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

var BookingStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}

type Booking struct {
	ID            string                 `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ServiceID     string                 `json:"serviceId" gorm:"type:varchar(36);not null;index"`
	Service       *Service               `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	ClientID      string                 `json:"clientId" gorm:"type:varchar(36);not null;index"`
	Client        *User                  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID    *string                `json:"providerId" gorm:"type:varchar(36);index"`
	Provider      *User                  `json:"provider" gorm:"foreignKey:ProviderID"`
	Status        BookingStatus          `json:"status" gorm:"not null;default:'PENDING'"`
	ScheduledDate time.Time              `json:"scheduledDate" gorm:"not null"`
	StatusHistory []BookingStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:BookingID"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
