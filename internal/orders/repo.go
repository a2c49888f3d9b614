package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakline/backoffice-backend/pkg/db/models"
)

// Repository loads order aggregates and their timeline sub-resources.
type Repository interface {
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListVariantPrices(ctx context.Context, variantIDs []uuid.UUID) ([]models.VariantPrice, error)
	ListNotes(ctx context.Context, orderID uuid.UUID) ([]models.OrderNote, error)
	ListNotifications(ctx context.Context, orderID uuid.UUID) ([]models.OrderNotification, error)
	CreateNote(ctx context.Context, note *models.OrderNote) (*models.OrderNote, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Returns.Items").
		Preload("Swaps.Return.Items").
		Preload("Swaps.AdditionalItems").
		Preload("Swaps.Fulfillments.Items").
		Preload("Claims.Items").
		Preload("Claims.Return.Items").
		Preload("Claims.Fulfillments.Items").
		Preload("Fulfillments.Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListVariantPrices(ctx context.Context, variantIDs []uuid.UUID) ([]models.VariantPrice, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	var prices []models.VariantPrice
	err := r.db.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Order("created_at ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) ListNotes(ctx context.Context, orderID uuid.UUID) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND resource_type = ?", orderID, "order").
		Order("created_at ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *repository) ListNotifications(ctx context.Context, orderID uuid.UUID) ([]models.OrderNotification, error) {
	var notifications []models.OrderNotification
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", orderID).
		Order("created_at ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repository) CreateNote(ctx context.Context, note *models.OrderNote) (*models.OrderNote, error) {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}
