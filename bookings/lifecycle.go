package bookings

import (
	"context"
	"time"

	"help-app-api/apperrors"
	"help-app-api/models"
	"help-app-api/statemachine"

	"gorm.io/gorm"
)

type CreateInput struct {
	ServiceID  string
	ClientID   string
	ProviderID *string
	// ScheduledDate is stored in UTC
	ScheduledDate time.Time
}

// Lifecycle creates bookings and moves them through their statuses
type Lifecycle struct {
	db *gorm.DB
}

func NewLifecycle(db *gorm.DB) *Lifecycle {
	return &Lifecycle{db: db}
}

func partySummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "role")
}

// withParties preloads the service, client and provider of a booking
func withParties(db *gorm.DB) *gorm.DB {
	return db.Preload("Service").
		Preload("Client", partySummary).
		Preload("Provider", partySummary)
}

// Create stores a new booking. It always starts PENDING, and only the store's
// foreign keys check that the service and provider exist.
func (l *Lifecycle) Create(ctx context.Context, in CreateInput) (*models.Booking, error) {
	booking := models.Booking{
		ServiceID:     in.ServiceID,
		ClientID:      in.ClientID,
		ProviderID:    in.ProviderID,
		Status:        models.StatusPending,
		ScheduledDate: in.ScheduledDate.UTC(),
	}
	if err := l.db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return l.find(ctx, booking.ID)
}

// FindByUserID returns the bookings userID takes part in as client or
// provider, newest first
func (l *Lifecycle) FindByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := withParties(l.db.WithContext(ctx)).
		Where("client_id = ? OR provider_id = ?", userID, userID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, apperrors.Translate(err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking to status on behalf of actingUserID, who must
// be the booking's assigned provider
func (l *Lifecycle) UpdateStatus(ctx context.Context, bookingID, actingUserID string, status models.BookingStatus) (*models.Booking, error) {
	db := l.db.WithContext(ctx)

	var booking models.Booking
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		err = apperrors.Translate(err)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.NewNotFound("Booking not found")
		}
		return nil, err
	}

	// An unassigned booking matches nobody and stays PENDING
	if booking.ProviderID == nil || *booking.ProviderID != actingUserID {
		return nil, apperrors.NewForbidden("Only the assigned provider can update booking status")
	}

	if err := statemachine.CanTransition(booking.Status, status); err != nil {
		return nil, apperrors.NewBadRequest(err.Error())
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Compare-and-set on the status read above
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Update("status", status)
		if res.Error != nil {
			return apperrors.Translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewConflict("Booking status was changed by another request")
		}

		history := models.BookingStatusHistory{
			BookingID:  booking.ID,
			FromStatus: booking.Status,
			ToStatus:   status,
			ChangedBy:  actingUserID,
		}
		return apperrors.Translate(tx.Create(&history).Error)
	})
	if err != nil {
		return nil, err
	}

	return l.find(ctx, booking.ID)
}

func (l *Lifecycle) find(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := withParties(l.db.WithContext(ctx)).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		err = apperrors.Translate(err)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.NewNotFound("Booking not found")
		}
		return nil, err
	}
	return &booking, nil
}
