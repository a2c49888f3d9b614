package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakline/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

// Service exposes fresh order snapshots and the note passthrough. Every read
// hits storage again; callers invalidate nothing because nothing is cached.
type Service interface {
	GetSnapshot(ctx context.Context, orderID uuid.UUID) (*Snapshot, error)
	ListNotes(ctx context.Context, orderID uuid.UUID) ([]Note, error)
	ListNotifications(ctx context.Context, orderID uuid.UUID) ([]Notification, error)
	VariantPrices(ctx context.Context, variantIDs []uuid.UUID) (map[uuid.UUID][]VariantPrice, error)
	AddNote(ctx context.Context, orderID uuid.UUID, value string, authorID *uuid.UUID) (*Note, error)
}

// VariantPrice is a price entry scoped to a region or to a currency.
type VariantPrice struct {
	RegionID     *uuid.UUID `json:"region_id,omitempty"`
	CurrencyCode *string    `json:"currency_code,omitempty"`
	AmountCents  int64      `json:"amount_cents"`
}

type service struct {
	repo Repository
}

// NewService builds the order snapshot service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetSnapshot(ctx context.Context, orderID uuid.UUID) (*Snapshot, error) {
	record, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return mapSnapshot(record), nil
}

func (s *service) ListNotes(ctx context.Context, orderID uuid.UUID) ([]Note, error) {
	records, err := s.repo.ListNotes(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notes")
	}
	notes := make([]Note, 0, len(records))
	for _, record := range records {
		notes = append(notes, Note{
			ID:        record.ID,
			Value:     record.Value,
			AuthorID:  record.AuthorID,
			CreatedAt: record.CreatedAt,
		})
	}
	return notes, nil
}

func (s *service) ListNotifications(ctx context.Context, orderID uuid.UUID) ([]Notification, error) {
	records, err := s.repo.ListNotifications(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	notifications := make([]Notification, 0, len(records))
	for _, record := range records {
		notifications = append(notifications, Notification{
			ID:        record.ID,
			EventName: record.EventName,
			To:        record.To,
			CreatedAt: record.CreatedAt,
		})
	}
	return notifications, nil
}

func (s *service) VariantPrices(ctx context.Context, variantIDs []uuid.UUID) (map[uuid.UUID][]VariantPrice, error) {
	records, err := s.repo.ListVariantPrices(ctx, variantIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variant prices")
	}
	prices := make(map[uuid.UUID][]VariantPrice, len(variantIDs))
	for _, record := range records {
		prices[record.VariantID] = append(prices[record.VariantID], VariantPrice{
			RegionID:     record.RegionID,
			CurrencyCode: record.CurrencyCode,
			AmountCents:  record.AmountCents,
		})
	}
	return prices, nil
}

func (s *service) AddNote(ctx context.Context, orderID uuid.UUID, value string, authorID *uuid.UUID) (*Note, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "note value required")
	}
	record, err := s.repo.CreateNote(ctx, &models.OrderNote{
		ResourceID:   orderID,
		ResourceType: "order",
		Value:        value,
		AuthorID:     authorID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create note")
	}
	return &Note{
		ID:        record.ID,
		Value:     record.Value,
		AuthorID:  record.AuthorID,
		CreatedAt: record.CreatedAt,
	}, nil
}

func mapSnapshot(record *models.Order) *Snapshot {
	snapshot := &Snapshot{
		ID:             record.ID,
		DisplayID:      record.DisplayID,
		RegionID:       record.RegionID,
		CurrencyCode:   record.CurrencyCode,
		TaxRate:        record.TaxRate,
		CustomerEmail:  record.CustomerEmail,
		NoNotification: record.NoNotification,
		CanceledAt:     record.CanceledAt,
		CreatedAt:      record.CreatedAt,
	}

	snapshot.Items = make([]LineItem, 0, len(record.Items))
	for _, item := range record.Items {
		snapshot.Items = append(snapshot.Items, LineItem{
			ID:               item.ID,
			VariantID:        item.VariantID,
			Title:            item.Title,
			Thumbnail:        item.Thumbnail,
			UnitPriceCents:   item.UnitPriceCents,
			Quantity:         item.Quantity,
			ReturnedQuantity: item.ReturnedQuantity,
			RefundableCents:  item.RefundableCents,
		})
	}

	snapshot.Returns = make([]ReturnRecord, 0, len(record.Returns))
	for _, ret := range record.Returns {
		snapshot.Returns = append(snapshot.Returns, mapReturn(ret))
	}

	snapshot.Swaps = make([]SwapRecord, 0, len(record.Swaps))
	for _, swap := range record.Swaps {
		mapped := SwapRecord{
			ID:                 swap.ID,
			DifferenceDueCents: swap.DifferenceDueCents,
			NoNotification:     swap.NoNotification,
			CanceledAt:         swap.CanceledAt,
			CreatedAt:          swap.CreatedAt,
			Fulfillments:       mapFulfillments(swap.Fulfillments),
		}
		if swap.Return != nil {
			ret := mapReturn(*swap.Return)
			mapped.Return = &ret
		}
		for _, add := range swap.AdditionalItems {
			mapped.AdditionalItems = append(mapped.AdditionalItems, AdditionalLine{
				VariantID:      add.VariantID,
				Title:          add.Title,
				UnitPriceCents: add.UnitPriceCents,
				Quantity:       add.Quantity,
			})
		}
		snapshot.Swaps = append(snapshot.Swaps, mapped)
	}

	snapshot.Claims = make([]ClaimRecord, 0, len(record.Claims))
	for _, claim := range record.Claims {
		mapped := ClaimRecord{
			ID:                claim.ID,
			Type:              claim.Type,
			RefundAmountCents: claim.RefundAmountCents,
			NoNotification:    claim.NoNotification,
			CanceledAt:        claim.CanceledAt,
			CreatedAt:         claim.CreatedAt,
			Items:             mapReturnLines(claim.Items),
			Fulfillments:      mapFulfillments(claim.Fulfillments),
		}
		if claim.Return != nil {
			ret := mapReturn(*claim.Return)
			mapped.Return = &ret
		}
		snapshot.Claims = append(snapshot.Claims, mapped)
	}

	snapshot.Fulfillments = mapFulfillments(record.Fulfillments)
	return snapshot
}

func mapReturn(record models.ReturnRecord) ReturnRecord {
	return ReturnRecord{
		ID:                record.ID,
		SwapID:            record.SwapID,
		ClaimID:           record.ClaimID,
		Status:            record.Status,
		RefundAmountCents: record.RefundAmountCents,
		ReceivedAt:        record.ReceivedAt,
		CreatedAt:         record.CreatedAt,
		Items:             mapReturnItems(record.Items),
	}
}

func mapReturnItems(items []models.ReturnItem) []ReturnLine {
	lines := make([]ReturnLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ReturnLine{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			ReasonID: item.ReasonID,
			Note:     item.Note,
			Images:   item.Images,
		})
	}
	return lines
}

func mapReturnLines(items []models.ClaimItem) []ReturnLine {
	lines := make([]ReturnLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ReturnLine{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			ReasonID: item.ReasonID,
			Note:     item.Note,
			Images:   item.Images,
		})
	}
	return lines
}

func mapFulfillments(records []models.Fulfillment) []Fulfillment {
	fulfillments := make([]Fulfillment, 0, len(records))
	for _, record := range records {
		mapped := Fulfillment{
			ID:              record.ID,
			TrackingNumbers: record.TrackingNumbers,
			ShippedAt:       record.ShippedAt,
			CanceledAt:      record.CanceledAt,
			CreatedAt:       record.CreatedAt,
		}
		if len(record.Items) > 0 {
			mapped.Quantities = make(map[uuid.UUID]int, len(record.Items))
			for _, item := range record.Items {
				mapped.Quantities[item.ItemID] += item.Quantity
			}
		}
		fulfillments = append(fulfillments, mapped)
	}
	return fulfillments
}
