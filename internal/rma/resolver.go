// Package rma implements the post-purchase modification engine: resolving
// returnable quantities, reconciling the monetary balance of a modification,
// and building the request payloads sent to the order modification service.
//
// Everything except Submitter is pure computation over order snapshots.
package rma

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

// ItemView is a line item annotated with its remaining returnable quantity.
// Items with Remaining == 0 stay in the list for display but are not
// selectable for a new modification.
type ItemView struct {
	Item       orders.LineItem `json:"item"`
	Remaining  int             `json:"remaining"`
	Selectable bool            `json:"selectable"`
}

// ResolveReturnableItems computes, for every line item of the order, how many
// units can still be returned or exchanged. Quantities committed to pending
// returns (standalone, swap-owned or claim-owned) and to open replace claims
// without a return are subtracted alongside returned_quantity.
func ResolveReturnableItems(order *orders.Snapshot) ([]ItemView, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDataIntegrity, "order snapshot required")
	}

	committed := make(map[uuid.UUID]int)
	for _, ret := range order.Returns {
		if !ret.Status.Pending() {
			continue
		}
		for _, line := range ret.Items {
			committed[line.ItemID] += line.Quantity
		}
	}
	for _, claim := range order.Claims {
		// Claims that own a return are already counted through order.Returns.
		if claim.CanceledAt != nil || claim.Return != nil {
			continue
		}
		for _, line := range claim.Items {
			committed[line.ItemID] += line.Quantity
		}
	}

	views := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		if err := validateLineItem(item); err != nil {
			return nil, err
		}
		remaining := item.Quantity - item.ReturnedQuantity - committed[item.ID]
		if remaining < 0 {
			remaining = 0
		}
		views = append(views, ItemView{
			Item:       item,
			Remaining:  remaining,
			Selectable: remaining > 0,
		})
	}
	return views, nil
}

func validateLineItem(item orders.LineItem) error {
	switch {
	case item.Quantity <= 0:
		return integrityError(item.ID, fmt.Sprintf("quantity %d must be positive", item.Quantity))
	case item.ReturnedQuantity < 0:
		return integrityError(item.ID, fmt.Sprintf("returned quantity %d is negative", item.ReturnedQuantity))
	case item.ReturnedQuantity > item.Quantity:
		return integrityError(item.ID, fmt.Sprintf("returned quantity %d exceeds quantity %d", item.ReturnedQuantity, item.Quantity))
	case item.RefundableCents < 0:
		return integrityError(item.ID, fmt.Sprintf("refundable amount %d is negative", item.RefundableCents))
	}
	return nil
}

func integrityError(itemID uuid.UUID, reason string) error {
	return pkgerrors.New(pkgerrors.CodeDataIntegrity, "malformed line item").
		WithDetails(map[string]any{"item_id": itemID, "reason": reason})
}
