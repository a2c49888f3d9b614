package rma

import (
	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

// ReturnSelectionItem is the operator's choice for one returned line.
type ReturnSelectionItem struct {
	Quantity int        `json:"quantity"`
	ReasonID *uuid.UUID `json:"reason_id,omitempty"`
	Note     string     `json:"note,omitempty"`
	Images   []string   `json:"images,omitempty"`
}

// ReturnSelection maps line item ids to what the operator wants to return.
type ReturnSelection map[uuid.UUID]ReturnSelectionItem

// AdditionalItem is a replacement variant the operator wants to ship,
// carrying the variant's price entries so the balance can be priced locally.
type AdditionalItem struct {
	VariantID uuid.UUID             `json:"variant_id"`
	Title     string                `json:"title"`
	Prices    []orders.VariantPrice `json:"prices"`
	Quantity  int                   `json:"quantity"`
}

// ShippingSelection captures the return shipping choice: no option, a quoted
// option, or a quoted option with a manual price override.
type ShippingSelection struct {
	OptionID      *uuid.UUID `json:"option_id,omitempty"`
	QuotedCents   int64      `json:"quoted_cents"`
	OverrideCents *int64     `json:"override_cents,omitempty"`
}

// Selection is the full in-progress state of a modification workflow. It is a
// plain value: every operation returns a modified copy and the original stays
// untouched, so a failed submission leaves the operator's input intact.
type Selection struct {
	Returns         ReturnSelection   `json:"returns"`
	AdditionalItems []AdditionalItem  `json:"additional_items"`
	Shipping        ShippingSelection `json:"shipping"`
	NoNotification  *bool             `json:"no_notification,omitempty"`
}

// SelectReturn records (or replaces) the return choice for a line item.
func (s Selection) SelectReturn(itemID uuid.UUID, item ReturnSelectionItem) Selection {
	out := s.clone()
	out.Returns[itemID] = item
	return out
}

// DeselectReturn removes the return choice for a line item.
func (s Selection) DeselectReturn(itemID uuid.UUID) Selection {
	out := s.clone()
	delete(out.Returns, itemID)
	return out
}

// AddVariant appends a replacement variant with quantity 1. Variants already
// present are left alone; the list never holds duplicate variant ids.
func (s Selection) AddVariant(item AdditionalItem) Selection {
	for _, existing := range s.AdditionalItems {
		if existing.VariantID == item.VariantID {
			return s.clone()
		}
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	out := s.clone()
	out.AdditionalItems = append(out.AdditionalItems, item)
	return out
}

// AdjustQuantity shifts a replacement variant's quantity by delta, floored
// at 1. Unknown variants are ignored.
func (s Selection) AdjustQuantity(variantID uuid.UUID, delta int) Selection {
	out := s.clone()
	for i := range out.AdditionalItems {
		if out.AdditionalItems[i].VariantID != variantID {
			continue
		}
		qty := out.AdditionalItems[i].Quantity + delta
		if qty < 1 {
			qty = 1
		}
		out.AdditionalItems[i].Quantity = qty
	}
	return out
}

// RemoveVariant drops a replacement variant from the selection.
func (s Selection) RemoveVariant(variantID uuid.UUID) Selection {
	out := s.clone()
	items := out.AdditionalItems[:0]
	for _, item := range out.AdditionalItems {
		if item.VariantID != variantID {
			items = append(items, item)
		}
	}
	out.AdditionalItems = items
	return out
}

// ChooseShippingOption selects a quoted return shipping option, clearing any
// previous manual override.
func (s Selection) ChooseShippingOption(optionID uuid.UUID, quotedCents int64) Selection {
	out := s.clone()
	id := optionID
	out.Shipping = ShippingSelection{OptionID: &id, QuotedCents: quotedCents}
	return out
}

// ClearShippingOption reverts to "no return shipping".
func (s Selection) ClearShippingOption() Selection {
	out := s.clone()
	out.Shipping = ShippingSelection{}
	return out
}

// OverrideShippingPrice replaces the quoted amount with an operator-entered
// one. Requires a chosen option and a non-negative amount.
func (s Selection) OverrideShippingPrice(cents int64) (Selection, error) {
	if s.Shipping.OptionID == nil {
		return s, pkgerrors.New(pkgerrors.CodeValidation, "shipping override requires a selected option")
	}
	if cents < 0 {
		return s, pkgerrors.New(pkgerrors.CodeValidation, "shipping override must not be negative")
	}
	out := s.clone()
	out.Shipping.OverrideCents = &cents
	return out, nil
}

// ClearShippingOverride reverts to the option's quoted amount.
func (s Selection) ClearShippingOverride() Selection {
	out := s.clone()
	out.Shipping.OverrideCents = nil
	return out
}

// SetNotification sets the notification override for this modification.
func (s Selection) SetNotification(noNotification bool) Selection {
	out := s.clone()
	out.NoNotification = &noNotification
	return out
}

func (s Selection) clone() Selection {
	out := Selection{
		Returns:        make(ReturnSelection, len(s.Returns)),
		Shipping:       s.Shipping,
		NoNotification: s.NoNotification,
	}
	for id, item := range s.Returns {
		out.Returns[id] = item
	}
	if len(s.AdditionalItems) > 0 {
		out.AdditionalItems = make([]AdditionalItem, len(s.AdditionalItems))
		copy(out.AdditionalItems, s.AdditionalItems)
	}
	if s.Shipping.OptionID != nil {
		id := *s.Shipping.OptionID
		out.Shipping.OptionID = &id
	}
	if s.Shipping.OverrideCents != nil {
		cents := *s.Shipping.OverrideCents
		out.Shipping.OverrideCents = &cents
	}
	return out
}
