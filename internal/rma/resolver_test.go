package rma

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/pkg/enums"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

func testItem(qty, returned int) orders.LineItem {
	return orders.LineItem{
		ID:               uuid.New(),
		VariantID:        uuid.New(),
		Title:            "Widget",
		UnitPriceCents:   1000,
		Quantity:         qty,
		ReturnedQuantity: returned,
		RefundableCents:  int64(1000 * qty),
	}
}

func requireDataIntegrityError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected data integrity error, got nil")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeDataIntegrity {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeDataIntegrity, code)
	}
}

func TestResolveReturnableItemsNilOrder(t *testing.T) {
	_, err := ResolveReturnableItems(nil)
	requireDataIntegrityError(t, err)
}

func TestResolveReturnableItemsRemaining(t *testing.T) {
	item := testItem(5, 1)
	order := &orders.Snapshot{Items: []orders.LineItem{item}}

	views, err := ResolveReturnableItems(order)
	if err != nil {
		t.Fatalf("resolve returnable items: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].Remaining != 4 {
		t.Fatalf("expected remaining 4, got %d", views[0].Remaining)
	}
	if !views[0].Selectable {
		t.Fatalf("item with remaining units must be selectable")
	}
}

func TestResolveReturnableItemsPendingReturnsCommit(t *testing.T) {
	item := testItem(5, 1)

	tests := []struct {
		name      string
		status    enums.ReturnStatus
		remaining int
	}{
		{name: "requested return holds units", status: enums.ReturnStatusRequested, remaining: 2},
		{name: "requires_action return holds units", status: enums.ReturnStatusRequiresAction, remaining: 2},
		{name: "received return already counted in returned_quantity", status: enums.ReturnStatusReceived, remaining: 4},
		{name: "canceled return releases units", status: enums.ReturnStatusCanceled, remaining: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := &orders.Snapshot{
				Items: []orders.LineItem{item},
				Returns: []orders.ReturnRecord{{
					ID:     uuid.New(),
					Status: tc.status,
					Items:  []orders.ReturnLine{{ItemID: item.ID, Quantity: 2}},
				}},
			}
			views, err := ResolveReturnableItems(order)
			if err != nil {
				t.Fatalf("resolve returnable items: %v", err)
			}
			if views[0].Remaining != tc.remaining {
				t.Fatalf("expected remaining %d, got %d", tc.remaining, views[0].Remaining)
			}
		})
	}
}

func TestResolveReturnableItemsClaims(t *testing.T) {
	item := testItem(4, 0)
	now := time.Now()

	claimWithReturn := orders.ClaimRecord{
		ID:    uuid.New(),
		Type:  enums.ClaimTypeReplace,
		Items: []orders.ReturnLine{{ItemID: item.ID, Quantity: 2}},
		Return: &orders.ReturnRecord{
			ID:     uuid.New(),
			Status: enums.ReturnStatusRequested,
			Items:  []orders.ReturnLine{{ItemID: item.ID, Quantity: 2}},
		},
	}
	canceledClaim := orders.ClaimRecord{
		ID:         uuid.New(),
		Type:       enums.ClaimTypeReplace,
		CanceledAt: &now,
		Items:      []orders.ReturnLine{{ItemID: item.ID, Quantity: 3}},
	}
	openClaim := orders.ClaimRecord{
		ID:    uuid.New(),
		Type:  enums.ClaimTypeRefund,
		Items: []orders.ReturnLine{{ItemID: item.ID, Quantity: 1}},
	}

	// The claim's own return is what commits units; counting both would
	// halve the remaining quantity.
	order := &orders.Snapshot{
		Items:   []orders.LineItem{item},
		Claims:  []orders.ClaimRecord{claimWithReturn, canceledClaim, openClaim},
		Returns: []orders.ReturnRecord{*claimWithReturn.Return},
	}

	views, err := ResolveReturnableItems(order)
	if err != nil {
		t.Fatalf("resolve returnable items: %v", err)
	}
	if views[0].Remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", views[0].Remaining)
	}
}

func TestResolveReturnableItemsClampsAtZero(t *testing.T) {
	item := testItem(2, 1)
	order := &orders.Snapshot{
		Items: []orders.LineItem{item},
		Returns: []orders.ReturnRecord{{
			ID:     uuid.New(),
			Status: enums.ReturnStatusRequested,
			Items:  []orders.ReturnLine{{ItemID: item.ID, Quantity: 5}},
		}},
	}

	views, err := ResolveReturnableItems(order)
	if err != nil {
		t.Fatalf("resolve returnable items: %v", err)
	}
	if views[0].Remaining != 0 {
		t.Fatalf("expected remaining clamped to 0, got %d", views[0].Remaining)
	}
	if views[0].Selectable {
		t.Fatalf("exhausted item must not be selectable")
	}
}

func TestResolveReturnableItemsMalformedLine(t *testing.T) {
	tests := []struct {
		name string
		item orders.LineItem
	}{
		{name: "zero quantity", item: orders.LineItem{ID: uuid.New(), Quantity: 0}},
		{name: "negative returned", item: orders.LineItem{ID: uuid.New(), Quantity: 2, ReturnedQuantity: -1}},
		{name: "returned above quantity", item: orders.LineItem{ID: uuid.New(), Quantity: 2, ReturnedQuantity: 3}},
		{name: "negative refundable", item: orders.LineItem{ID: uuid.New(), Quantity: 2, RefundableCents: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := &orders.Snapshot{Items: []orders.LineItem{tc.item}}
			_, err := ResolveReturnableItems(order)
			requireDataIntegrityError(t, err)
		})
	}
}
