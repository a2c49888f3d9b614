// Package orders exposes the operator dashboard's order modification HTTP
// surface: order detail, returnable items, balance previews, swap/return/
// claim submissions, the timeline, and notes.
package orders

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	internalorders "github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/internal/rma"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

type returnItemRequest struct {
	ItemID   uuid.UUID  `json:"item_id" validate:"required"`
	Quantity int        `json:"quantity" validate:"required,min=1"`
	ReasonID *uuid.UUID `json:"reason_id"`
	Note     string     `json:"note"`
	Images   []string   `json:"images"`
}

type additionalItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type returnShippingRequest struct {
	OptionID      uuid.UUID `json:"option_id" validate:"required"`
	QuotedCents   int64     `json:"quoted_cents" validate:"min=0"`
	OverrideCents *int64    `json:"override_cents"`
}

// selectionRequest is the common body of balance previews and submissions.
type selectionRequest struct {
	ReturnItems     []returnItemRequest     `json:"return_items" validate:"dive"`
	AdditionalItems []additionalItemRequest `json:"additional_items" validate:"dive"`
	ReturnShipping  *returnShippingRequest  `json:"return_shipping"`
	NoNotification  *bool                   `json:"no_notification"`
}

type claimRequest struct {
	Type string `json:"type" validate:"required,oneof=replace refund"`
	selectionRequest
}

type noteRequest struct {
	Value    string     `json:"value" validate:"required"`
	AuthorID *uuid.UUID `json:"author_id"`
}

// toSelection converts the request body into the engine's selection value,
// resolving variant prices for replacement items through the orders service.
func (req *selectionRequest) toSelection(ctx context.Context, svc internalorders.Service) (rma.Selection, error) {
	sel := rma.Selection{Returns: make(rma.ReturnSelection, len(req.ReturnItems))}

	for _, item := range req.ReturnItems {
		if _, exists := sel.Returns[item.ItemID]; exists {
			return rma.Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "duplicate return item").
				WithDetails(map[string]any{"item_id": item.ItemID})
		}
		sel.Returns[item.ItemID] = rma.ReturnSelectionItem{
			Quantity: item.Quantity,
			ReasonID: item.ReasonID,
			Note:     item.Note,
			Images:   item.Images,
		}
	}

	if len(req.AdditionalItems) > 0 {
		variantIDs := make([]uuid.UUID, 0, len(req.AdditionalItems))
		seen := make(map[uuid.UUID]struct{}, len(req.AdditionalItems))
		for _, item := range req.AdditionalItems {
			if _, exists := seen[item.VariantID]; exists {
				return rma.Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "duplicate additional item").
					WithDetails(map[string]any{"variant_id": item.VariantID})
			}
			seen[item.VariantID] = struct{}{}
			variantIDs = append(variantIDs, item.VariantID)
		}
		prices, err := svc.VariantPrices(ctx, variantIDs)
		if err != nil {
			return rma.Selection{}, err
		}
		for _, item := range req.AdditionalItems {
			sel.AdditionalItems = append(sel.AdditionalItems, rma.AdditionalItem{
				VariantID: item.VariantID,
				Prices:    prices[item.VariantID],
				Quantity:  item.Quantity,
			})
		}
	}

	if req.ReturnShipping != nil {
		optionID := req.ReturnShipping.OptionID
		sel.Shipping = rma.ShippingSelection{
			OptionID:      &optionID,
			QuotedCents:   req.ReturnShipping.QuotedCents,
			OverrideCents: req.ReturnShipping.OverrideCents,
		}
	}

	sel.NoNotification = req.NoNotification
	return sel, nil
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}
