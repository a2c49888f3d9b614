package rma

import (
	"testing"

	"github.com/google/uuid"
)

func TestSelectionSelectAndDeselectReturn(t *testing.T) {
	itemID := uuid.New()
	base := Selection{Returns: ReturnSelection{}}

	selected := base.SelectReturn(itemID, ReturnSelectionItem{Quantity: 2})
	if selected.Returns[itemID].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", selected.Returns[itemID].Quantity)
	}
	if len(base.Returns) != 0 {
		t.Fatalf("original selection must stay untouched, has %d returns", len(base.Returns))
	}

	cleared := selected.DeselectReturn(itemID)
	if len(cleared.Returns) != 0 {
		t.Fatalf("expected cleared returns, got %d", len(cleared.Returns))
	}
	if len(selected.Returns) != 1 {
		t.Fatalf("deselect must not mutate its receiver")
	}
}

func TestSelectionAddVariantDeduplicates(t *testing.T) {
	variantID := uuid.New()
	sel := Selection{}.AddVariant(AdditionalItem{VariantID: variantID})
	sel = sel.AddVariant(AdditionalItem{VariantID: variantID})

	if len(sel.AdditionalItems) != 1 {
		t.Fatalf("expected 1 additional item, got %d", len(sel.AdditionalItems))
	}
	if sel.AdditionalItems[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", sel.AdditionalItems[0].Quantity)
	}
}

func TestSelectionAdjustQuantityFloorsAtOne(t *testing.T) {
	variantID := uuid.New()
	sel := Selection{}.AddVariant(AdditionalItem{VariantID: variantID})

	sel = sel.AdjustQuantity(variantID, 3)
	if sel.AdditionalItems[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", sel.AdditionalItems[0].Quantity)
	}

	sel = sel.AdjustQuantity(variantID, -10)
	if sel.AdditionalItems[0].Quantity != 1 {
		t.Fatalf("expected floor at 1, got %d", sel.AdditionalItems[0].Quantity)
	}

	// Unknown variants are a no-op.
	sel = sel.AdjustQuantity(uuid.New(), 5)
	if sel.AdditionalItems[0].Quantity != 1 {
		t.Fatalf("unknown variant adjusted quantity to %d", sel.AdditionalItems[0].Quantity)
	}
}

func TestSelectionRemoveVariant(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()
	sel := Selection{}.
		AddVariant(AdditionalItem{VariantID: keep}).
		AddVariant(AdditionalItem{VariantID: drop}).
		RemoveVariant(drop)

	if len(sel.AdditionalItems) != 1 {
		t.Fatalf("expected 1 additional item, got %d", len(sel.AdditionalItems))
	}
	if sel.AdditionalItems[0].VariantID != keep {
		t.Fatalf("wrong variant kept: %s", sel.AdditionalItems[0].VariantID)
	}
}

func TestSelectionShippingLifecycle(t *testing.T) {
	optionID := uuid.New()
	sel := Selection{}.ChooseShippingOption(optionID, 250)
	if sel.Shipping.OptionID == nil || *sel.Shipping.OptionID != optionID {
		t.Fatalf("option not chosen: %+v", sel.Shipping)
	}
	if sel.Shipping.QuotedCents != 250 {
		t.Fatalf("expected quoted 250, got %d", sel.Shipping.QuotedCents)
	}

	overridden, err := sel.OverrideShippingPrice(100)
	if err != nil {
		t.Fatalf("override shipping price: %v", err)
	}
	if overridden.Shipping.OverrideCents == nil || *overridden.Shipping.OverrideCents != 100 {
		t.Fatalf("expected override 100, got %+v", overridden.Shipping.OverrideCents)
	}

	// Choosing a new option drops the override.
	rechosen := overridden.ChooseShippingOption(uuid.New(), 300)
	if rechosen.Shipping.OverrideCents != nil {
		t.Fatalf("override should reset on a new option")
	}

	cleared := overridden.ClearShippingOverride()
	if cleared.Shipping.OverrideCents != nil {
		t.Fatalf("override should be cleared")
	}
	if cleared.Shipping.QuotedCents != 250 {
		t.Fatalf("quoted price lost on clear: %d", cleared.Shipping.QuotedCents)
	}

	none := cleared.ClearShippingOption()
	if none.Shipping.OptionID != nil {
		t.Fatalf("option should be cleared")
	}
}

func TestSelectionOverrideValidation(t *testing.T) {
	_, err := Selection{}.OverrideShippingPrice(100)
	requireValidationError(t, err)

	optionID := uuid.New()
	sel := Selection{}.ChooseShippingOption(optionID, 250)
	_, err = sel.OverrideShippingPrice(-1)
	requireValidationError(t, err)
}

func TestSelectionSetNotification(t *testing.T) {
	sel := Selection{}
	if sel.NoNotification != nil {
		t.Fatalf("zero value should carry no notification choice")
	}

	set := sel.SetNotification(true)
	if set.NoNotification == nil || !*set.NoNotification {
		t.Fatalf("expected no_notification true, got %+v", set.NoNotification)
	}
	if sel.NoNotification != nil {
		t.Fatalf("original selection must stay untouched")
	}
}
