// Package shipping lists the return shipping options offered during an order
// modification.
package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakline/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

var errRepositoryRequired = errors.New("shipping service requires a repository")

// Option is one return shipping choice presented to the operator.
type Option struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
}

// Repository loads shipping options from storage.
type Repository interface {
	ListReturnOptions(ctx context.Context, regionID uuid.UUID) ([]models.ShippingOption, error)
}

// Service exposes region-scoped return shipping options.
type Service interface {
	ReturnOptions(ctx context.Context, regionID uuid.UUID) ([]Option, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shipping repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListReturnOptions(ctx context.Context, regionID uuid.UUID) ([]models.ShippingOption, error) {
	var options []models.ShippingOption
	err := r.db.WithContext(ctx).
		Where("region_id = ? AND is_return = ?", regionID, true).
		Order("name ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

type service struct {
	repo Repository
}

// NewService wires the shipping service and validates its dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errRepositoryRequired
	}
	return &service{repo: repo}, nil
}

func (s *service) ReturnOptions(ctx context.Context, regionID uuid.UUID) ([]Option, error) {
	records, err := s.repo.ListReturnOptions(ctx, regionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list return shipping options")
	}
	options := make([]Option, 0, len(records))
	for _, record := range records {
		options = append(options, Option{
			ID:          record.ID,
			Name:        record.Name,
			AmountCents: record.AmountCents,
		})
	}
	return options, nil
}
