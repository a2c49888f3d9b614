package rma

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakline/backoffice-backend/internal/orders"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

// Balance is the reconciled money outcome of a selection against an order.
// All values are minor units of the order's currency, kept as decimals so
// fractional per-unit refund shares survive until display. NetDifference is
// positive when the customer owes money and negative when a refund is due.
type Balance struct {
	ReturnTotal     decimal.Decimal `json:"return_total"`
	AdditionalTotal decimal.Decimal `json:"additional_total"`
	ShippingAmount  decimal.Decimal `json:"shipping_amount"`
	NetDifference   decimal.Decimal `json:"net_difference"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeBalance prices the selection against the order snapshot.
//
// The return side values each selected line at its per-unit refundable share,
// refundable / (quantity - returned_quantity), times the selected quantity,
// minus the return shipping amount. The additional side prices each variant
// by region first, then currency, then zero, and applies the order's tax rate.
func ComputeBalance(order *orders.Snapshot, sel Selection) (*Balance, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order snapshot is required")
	}

	itemsByID := make(map[uuid.UUID]orders.LineItem, len(order.Items))
	for _, item := range order.Items {
		itemsByID[item.ID] = item
	}

	returnTotal := decimal.Zero
	for itemID, selected := range sel.Returns {
		item, ok := itemsByID[itemID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("selected item %s is not on the order", itemID))
		}
		returnable := item.Quantity - item.ReturnedQuantity
		if returnable <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %s has no returnable quantity", itemID))
		}
		if selected.Quantity < 1 || selected.Quantity > returnable {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %s quantity %d is out of range 1..%d", itemID, selected.Quantity, returnable))
		}
		perUnit := decimal.NewFromInt(item.RefundableCents).
			Div(decimal.NewFromInt(int64(returnable)))
		returnTotal = returnTotal.Add(perUnit.Mul(decimal.NewFromInt(int64(selected.Quantity))))
	}

	shipping, err := resolveShippingAmount(sel.Shipping)
	if err != nil {
		return nil, err
	}
	returnTotal = returnTotal.Sub(shipping)

	taxFactor := decimal.NewFromInt(1).
		Add(decimal.NewFromFloat(order.TaxRate).Div(oneHundred))

	additionalTotal := decimal.Zero
	for _, item := range sel.AdditionalItems {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("variant %s quantity must be at least 1", item.VariantID))
		}
		price := resolveVariantPrice(order, item.Prices)
		line := price.
			Mul(decimal.NewFromInt(int64(item.Quantity))).
			Mul(taxFactor)
		additionalTotal = additionalTotal.Add(line)
	}

	return &Balance{
		ReturnTotal:     returnTotal,
		AdditionalTotal: additionalTotal,
		ShippingAmount:  shipping,
		NetDifference:   additionalTotal.Sub(returnTotal),
	}, nil
}

// resolveVariantPrice picks the price entry matching the order's region, then
// one matching its currency, then falls back to zero. Missing prices do not
// block the preview; the submission backend reprices authoritatively.
func resolveVariantPrice(order *orders.Snapshot, prices []orders.VariantPrice) decimal.Decimal {
	for _, p := range prices {
		if p.RegionID != nil && *p.RegionID == order.RegionID {
			return decimal.NewFromInt(p.AmountCents)
		}
	}
	for _, p := range prices {
		if p.CurrencyCode != nil && *p.CurrencyCode == order.CurrencyCode {
			return decimal.NewFromInt(p.AmountCents)
		}
	}
	return decimal.Zero
}

func resolveShippingAmount(shipping ShippingSelection) (decimal.Decimal, error) {
	if shipping.OptionID == nil {
		if shipping.OverrideCents != nil {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "shipping override requires a selected option")
		}
		return decimal.Zero, nil
	}
	if shipping.OverrideCents != nil {
		if *shipping.OverrideCents < 0 {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "shipping override must not be negative")
		}
		return decimal.NewFromInt(*shipping.OverrideCents), nil
	}
	return decimal.NewFromInt(shipping.QuotedCents), nil
}
