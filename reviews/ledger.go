package reviews

import (
	"context"

	"help-app-api/apperrors"
	"help-app-api/models"

	"gorm.io/gorm"
)

type CreateInput struct {
	Rating     int
	Comment    *string
	BookingID  string
	ClientID   string
	ProviderID string
}

// Ledger records the one review each completed booking may receive
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func contactSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

// Create stores a review written by the booking's own client once the
// booking is completed. The read-side duplicate check is backed by a unique
// index on booking_id, so a concurrent duplicate surfaces as a conflict.
func (l *Ledger) Create(ctx context.Context, in CreateInput) (*models.Review, error) {
	db := l.db.WithContext(ctx)

	var booking models.Booking
	if err := db.First(&booking, "id = ?", in.BookingID).Error; err != nil {
		err = apperrors.Translate(err)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.NewNotFound("Booking not found")
		}
		return nil, err
	}

	if booking.Status != models.StatusCompleted {
		return nil, apperrors.NewBadRequest("Reviews can only be created for completed bookings")
	}
	if booking.ClientID != in.ClientID {
		return nil, apperrors.NewBadRequest("Only the booking client can create a review")
	}
	if booking.ProviderID == nil || *booking.ProviderID != in.ProviderID {
		return nil, apperrors.NewBadRequest("Provider does not match the booking provider")
	}

	var existing int64
	if err := db.Model(&models.Review{}).Where("booking_id = ?", in.BookingID).Count(&existing).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	if existing > 0 {
		return nil, apperrors.NewBadRequest("Review already exists for this booking")
	}

	review := models.Review{
		Rating:     in.Rating,
		Comment:    in.Comment,
		BookingID:  in.BookingID,
		ClientID:   in.ClientID,
		ProviderID: in.ProviderID,
	}
	if err := db.Create(&review).Error; err != nil {
		err = apperrors.Translate(err)
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.NewConflict("Review already exists for this booking")
		}
		return nil, err
	}

	var created models.Review
	err := db.Preload("Booking.Service").
		Preload("Client", contactSummary).
		Preload("Provider", contactSummary).
		First(&created, "id = ?", review.ID).Error
	if err != nil {
		return nil, apperrors.Translate(err)
	}
	return &created, nil
}
