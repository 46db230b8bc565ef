package bookings

import (
	"context"
	"testing"
	"time"

	"help-app-api/apperrors"
	"help-app-api/dbtest"
	"help-app-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	lifecycle *Lifecycle
	service   models.Service
	client    models.User
	provider  models.User
	other     models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	f := &fixture{
		db:        db,
		lifecycle: NewLifecycle(db),
		service:   models.Service{Name: "Plumbing"},
		client:    models.User{Name: "Cal Client", Email: "client@x.com", PasswordHash: "h", Role: models.RoleClient},
		provider:  models.User{Name: "Pia Provider", Email: "provider@x.com", PasswordHash: "h", Role: models.RoleProvider},
		other:     models.User{Name: "Otto Provider", Email: "other@x.com", PasswordHash: "h", Role: models.RoleProvider},
	}
	require.NoError(t, db.Create(&f.service).Error)
	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.provider).Error)
	require.NoError(t, db.Create(&f.other).Error)
	return f
}

func (f *fixture) book(t *testing.T, providerID *string) *models.Booking {
	t.Helper()
	b, err := f.lifecycle.Create(context.Background(), CreateInput{
		ServiceID:     f.service.ID,
		ClientID:      f.client.ID,
		ProviderID:    providerID,
		ScheduledDate: time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return b
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, &f.provider.ID)
	assert.Equal(t, models.StatusPending, b.Status)
	require.NotNil(t, b.ProviderID)
	assert.Equal(t, f.provider.ID, *b.ProviderID)

	require.NotNil(t, b.Service)
	assert.Equal(t, "Plumbing", b.Service.Name)
	require.NotNil(t, b.Client)
	assert.Equal(t, f.client.Email, b.Client.Email)
	assert.Equal(t, models.RoleClient, b.Client.Role)
	assert.Empty(t, b.Client.PasswordHash)
	require.NotNil(t, b.Provider)
	assert.Equal(t, f.provider.Name, b.Provider.Name)
	assert.True(t, b.ScheduledDate.Equal(time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC)))
}

func TestCreate_WithoutProvider(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, nil)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Nil(t, b.ProviderID)
	assert.Nil(t, b.Provider)
}

func TestCreate_UnknownService(t *testing.T) {
	f := newFixture(t)

	_, err := f.lifecycle.Create(context.Background(), CreateInput{
		ServiceID:     "no-such-service",
		ClientID:      f.client.ID,
		ScheduledDate: time.Now(),
	})
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
}

func TestFindByUserID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assigned := f.book(t, &f.provider.ID)
	unassigned := f.book(t, nil)

	clientView, err := f.lifecycle.FindByUserID(ctx, f.client.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{assigned.ID, unassigned.ID}, bookingIDs(clientView))

	providerView, err := f.lifecycle.FindByUserID(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{assigned.ID}, bookingIDs(providerView))
	require.NotNil(t, providerView[0].Client)
	assert.Equal(t, f.client.ID, providerView[0].Client.ID)

	none, err := f.lifecycle.FindByUserID(ctx, f.other.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindByUserID_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.book(t, nil)
	second := f.book(t, nil)
	// pin creation times so the ordering does not depend on clock resolution
	require.NoError(t, f.db.Model(&models.Booking{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	list, err := f.lifecycle.FindByUserID(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, bookingIDs(list))
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, &f.provider.ID)

	updated, err := f.lifecycle.UpdateStatus(ctx, b.ID, f.provider.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
	require.NotNil(t, updated.Service)

	updated, err = f.lifecycle.UpdateStatus(ctx, b.ID, f.provider.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	_, err = f.lifecycle.UpdateStatus(ctx, b.ID, f.provider.ID, models.StatusCancelled)
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
}

func TestUpdateStatus_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, &f.provider.ID)

	for _, actor := range []string{f.client.ID, f.other.ID, ""} {
		_, err := f.lifecycle.UpdateStatus(ctx, b.ID, actor, models.StatusAccepted)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden), "actor %q", actor)
	}

	var stored models.Booking
	require.NoError(t, f.db.First(&stored, "id = ?", b.ID).Error)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatus_UnassignedBookingIsStuck(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, nil)

	for _, actor := range []string{f.provider.ID, f.client.ID} {
		_, err := f.lifecycle.UpdateStatus(context.Background(), b.ID, actor, models.StatusAccepted)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	}
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, &f.provider.ID)

	_, err := f.lifecycle.UpdateStatus(context.Background(), b.ID, f.provider.ID, models.StatusCompleted)
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
	assert.ErrorContains(t, err, "ACCEPTED, REJECTED")
}

func TestUpdateStatus_RecordsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, &f.provider.ID)

	_, err := f.lifecycle.UpdateStatus(ctx, b.ID, f.provider.ID, models.StatusAccepted)
	require.NoError(t, err)
	updated, err := f.lifecycle.UpdateStatus(ctx, b.ID, f.provider.ID, models.StatusCompleted)
	require.NoError(t, err)

	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, models.StatusPending, updated.StatusHistory[0].FromStatus)
	assert.Equal(t, models.StatusAccepted, updated.StatusHistory[0].ToStatus)
	assert.Equal(t, models.StatusAccepted, updated.StatusHistory[1].FromStatus)
	assert.Equal(t, models.StatusCompleted, updated.StatusHistory[1].ToStatus)
	for _, h := range updated.StatusHistory {
		assert.Equal(t, f.provider.ID, h.ChangedBy)
		assert.Equal(t, b.ID, h.BookingID)
	}

	// rejected attempts leave no trace
	_, err = f.lifecycle.UpdateStatus(ctx, b.ID, f.client.ID, models.StatusCancelled)
	require.Error(t, err)
	var count int64
	f.db.Model(&models.BookingStatusHistory{}).Where("booking_id = ?", b.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestUpdateStatus_LostRaceIsConflict(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, &f.provider.ID)

	// Another writer rejects the booking after UpdateStatus has read it as
	// PENDING but before its own update runs.
	raced := false
	err := f.db.Callback().Update().Before("gorm:update").Register("test:concurrent_reject", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "bookings" {
			return
		}
		raced = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE bookings SET status = ? WHERE id = ?", string(models.StatusRejected), b.ID)
		require.NoError(t, err)
	})
	require.NoError(t, err)

	_, err = f.lifecycle.UpdateStatus(context.Background(), b.ID, f.provider.ID, models.StatusAccepted)
	require.True(t, raced)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict), "got %v", err)

	var count int64
	f.db.Model(&models.BookingStatusHistory{}).Where("booking_id = ?", b.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.lifecycle.UpdateStatus(context.Background(), "missing", f.provider.ID, models.StatusAccepted)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func bookingIDs(bookings []models.Booking) []string {
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}
