package catalog

import (
	"context"

	"help-app-api/apperrors"
	"help-app-api/models"

	"gorm.io/gorm"
)

// Catalog stores the service types clients can book
type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Create adds a service type. Name uniqueness is enforced by the store.
func (c *Catalog) Create(ctx context.Context, name string) (*models.Service, error) {
	service := models.Service{Name: name}
	if err := c.db.WithContext(ctx).Create(&service).Error; err != nil {
		err = apperrors.Translate(err)
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.NewConflict("Service with this name already exists")
		}
		return nil, err
	}
	return &service, nil
}

// List returns every service ordered by name
func (c *Catalog) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := c.db.WithContext(ctx).Order("name asc").Find(&services).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return services, nil
}

func (c *Catalog) FindByID(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := c.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		err = apperrors.Translate(err)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.NewNotFound("Service not found")
		}
		return nil, err
	}
	return &service, nil
}
