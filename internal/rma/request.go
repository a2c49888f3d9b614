package rma

import (
	"sort"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/pkg/currency"
	"github.com/oakline/backoffice-backend/pkg/enums"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

// ReturnItemPayload is one returned line in an outgoing modification request.
// Optional fields are omitted entirely rather than sent as null.
type ReturnItemPayload struct {
	ItemID   uuid.UUID  `json:"item_id"`
	Quantity int        `json:"quantity"`
	ReasonID *uuid.UUID `json:"reason_id,omitempty"`
	Note     string     `json:"note,omitempty"`
	Images   []string   `json:"images,omitempty"`
}

// AdditionalItemPayload is one replacement line in a swap or claim request.
type AdditionalItemPayload struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

// ReturnShippingPayload carries the chosen return shipping option with the
// effective price, the override when one is active and the quote otherwise.
type ReturnShippingPayload struct {
	OptionID uuid.UUID `json:"option_id"`
	Price    int64     `json:"price"`
}

// SwapRequest is the payload for creating a swap on an order.
type SwapRequest struct {
	ReturnItems     []ReturnItemPayload     `json:"return_items"`
	AdditionalItems []AdditionalItemPayload `json:"additional_items"`
	ReturnShipping  *ReturnShippingPayload  `json:"return_shipping,omitempty"`
	NoNotification  *bool                   `json:"no_notification,omitempty"`
}

// ReturnRequest is the payload for creating a standalone return.
type ReturnRequest struct {
	Items          []ReturnItemPayload    `json:"items"`
	ReturnShipping *ReturnShippingPayload `json:"return_shipping,omitempty"`
	Refund         *int64                 `json:"refund,omitempty"`
	NoNotification *bool                  `json:"no_notification,omitempty"`
}

// ClaimRequest is the payload for creating a claim on an order.
type ClaimRequest struct {
	Type            enums.ClaimType         `json:"type"`
	ClaimItems      []ReturnItemPayload     `json:"claim_items"`
	AdditionalItems []AdditionalItemPayload `json:"additional_items,omitempty"`
	ReturnShipping  *ReturnShippingPayload  `json:"return_shipping,omitempty"`
	NoNotification  *bool                   `json:"no_notification,omitempty"`
}

// BuildSwapRequest assembles the outgoing swap payload from a selection.
// Ordering is deterministic: return items are sorted by item id and
// additional items keep the operator's insertion order.
func BuildSwapRequest(order *orders.Snapshot, sel Selection) (*SwapRequest, error) {
	returnItems, err := buildReturnItems(sel.Returns)
	if err != nil {
		return nil, err
	}
	if len(sel.AdditionalItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swap requires at least one additional item")
	}
	return &SwapRequest{
		ReturnItems:     returnItems,
		AdditionalItems: buildAdditionalItems(sel.AdditionalItems),
		ReturnShipping:  buildReturnShipping(sel.Shipping),
		NoNotification:  notificationOverride(order, sel),
	}, nil
}

// BuildReturnRequest assembles the outgoing return payload. When the caller
// has a computed balance, the refund amount is its return total rounded to a
// whole minor unit.
func BuildReturnRequest(order *orders.Snapshot, sel Selection, balance *Balance) (*ReturnRequest, error) {
	items, err := buildReturnItems(sel.Returns)
	if err != nil {
		return nil, err
	}
	req := &ReturnRequest{
		Items:          items,
		ReturnShipping: buildReturnShipping(sel.Shipping),
		NoNotification: notificationOverride(order, sel),
	}
	if balance != nil {
		refund := currency.RoundMinor(balance.ReturnTotal)
		req.Refund = &refund
	}
	return req, nil
}

// BuildClaimRequest assembles the outgoing claim payload. Replace claims
// carry the replacement items; refund claims must not.
func BuildClaimRequest(order *orders.Snapshot, claimType enums.ClaimType, sel Selection) (*ClaimRequest, error) {
	if !claimType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown claim type")
	}
	items, err := buildReturnItems(sel.Returns)
	if err != nil {
		return nil, err
	}
	req := &ClaimRequest{
		Type:           claimType,
		ClaimItems:     items,
		ReturnShipping: buildReturnShipping(sel.Shipping),
		NoNotification: notificationOverride(order, sel),
	}
	switch claimType {
	case enums.ClaimTypeReplace:
		if len(sel.AdditionalItems) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "replace claim requires at least one additional item")
		}
		req.AdditionalItems = buildAdditionalItems(sel.AdditionalItems)
	case enums.ClaimTypeRefund:
		if len(sel.AdditionalItems) > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund claim must not carry additional items")
		}
	}
	return req, nil
}

func buildReturnItems(selection ReturnSelection) ([]ReturnItemPayload, error) {
	if len(selection) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one return item is required")
	}
	items := make([]ReturnItemPayload, 0, len(selection))
	for itemID, sel := range selection {
		if sel.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "return item quantity must be at least 1")
		}
		payload := ReturnItemPayload{
			ItemID:   itemID,
			Quantity: sel.Quantity,
			Note:     sel.Note,
		}
		if sel.ReasonID != nil {
			id := *sel.ReasonID
			payload.ReasonID = &id
		}
		if len(sel.Images) > 0 {
			payload.Images = append([]string(nil), sel.Images...)
		}
		items = append(items, payload)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemID.String() < items[j].ItemID.String()
	})
	return items, nil
}

func buildAdditionalItems(selection []AdditionalItem) []AdditionalItemPayload {
	items := make([]AdditionalItemPayload, 0, len(selection))
	for _, sel := range selection {
		items = append(items, AdditionalItemPayload{
			VariantID: sel.VariantID,
			Quantity:  sel.Quantity,
		})
	}
	return items
}

func buildReturnShipping(shipping ShippingSelection) *ReturnShippingPayload {
	if shipping.OptionID == nil {
		return nil
	}
	price := shipping.QuotedCents
	if shipping.OverrideCents != nil {
		price = *shipping.OverrideCents
	}
	return &ReturnShippingPayload{OptionID: *shipping.OptionID, Price: price}
}

// notificationOverride returns the no_notification flag only when the
// operator's choice differs from the order's default.
func notificationOverride(order *orders.Snapshot, sel Selection) *bool {
	if sel.NoNotification == nil {
		return nil
	}
	if order != nil && order.NoNotification == *sel.NoNotification {
		return nil
	}
	value := *sel.NoNotification
	return &value
}
