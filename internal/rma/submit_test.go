package rma

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/pkg/enums"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

type stubReader struct {
	snapshot *orders.Snapshot
	err      error
}

func (s *stubReader) GetSnapshot(ctx context.Context, orderID uuid.UUID) (*orders.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

type stubTransport struct {
	swaps   int
	returns int
	claims  int

	lastSwap   *SwapRequest
	lastReturn *ReturnRequest
	lastClaim  *ClaimRequest

	err error
}

func (s *stubTransport) CreateSwap(ctx context.Context, orderID uuid.UUID, req *SwapRequest) (*SubmissionResult, error) {
	s.swaps++
	s.lastSwap = req
	if s.err != nil {
		return nil, s.err
	}
	id := uuid.New()
	return &SubmissionResult{SwapID: &id}, nil
}

func (s *stubTransport) CreateReturn(ctx context.Context, orderID uuid.UUID, req *ReturnRequest) (*SubmissionResult, error) {
	s.returns++
	s.lastReturn = req
	if s.err != nil {
		return nil, s.err
	}
	id := uuid.New()
	return &SubmissionResult{ReturnID: &id}, nil
}

func (s *stubTransport) CreateClaim(ctx context.Context, orderID uuid.UUID, req *ClaimRequest) (*SubmissionResult, error) {
	s.claims++
	s.lastClaim = req
	if s.err != nil {
		return nil, s.err
	}
	id := uuid.New()
	return &SubmissionResult{ClaimID: &id}, nil
}

func submitOrder(items ...orders.LineItem) *orders.Snapshot {
	return &orders.Snapshot{
		ID:           uuid.New(),
		RegionID:     uuid.New(),
		CurrencyCode: "usd",
		Items:        items,
	}
}

func newTestSubmitter(t *testing.T, reader OrderReader, transport Transport) *Submitter {
	t.Helper()
	sub, err := NewSubmitter(reader, transport, nil)
	if err != nil {
		t.Fatalf("new submitter: %v", err)
	}
	return sub
}

func TestNewSubmitterValidatesDeps(t *testing.T) {
	if _, err := NewSubmitter(nil, &stubTransport{}, nil); err == nil {
		t.Fatalf("expected error without reader")
	}
	if _, err := NewSubmitter(&stubReader{}, nil, nil); err == nil {
		t.Fatalf("expected error without transport")
	}
	sub, err := NewSubmitter(&stubReader{}, &stubTransport{}, nil)
	if err != nil {
		t.Fatalf("new submitter: %v", err)
	}
	if sub == nil {
		t.Fatalf("expected submitter")
	}
}

func TestSubmitReturnHappyPath(t *testing.T) {
	item := testItem(2, 0)
	item.RefundableCents = 1000
	order := submitOrder(item)
	transport := &stubTransport{}
	sub := newTestSubmitter(t, &stubReader{snapshot: order}, transport)

	sel := Selection{Returns: ReturnSelection{item.ID: {Quantity: 1}}}
	result, err := sub.SubmitReturn(context.Background(), order.ID, sel)
	if err != nil {
		t.Fatalf("submit return: %v", err)
	}
	if result.ReturnID == nil {
		t.Fatalf("expected return id")
	}
	if transport.returns != 1 {
		t.Fatalf("expected 1 return submission, got %d", transport.returns)
	}

	if transport.lastReturn.Refund == nil {
		t.Fatalf("expected refund amount")
	}
	if *transport.lastReturn.Refund != 500 {
		t.Fatalf("expected refund 500, got %d", *transport.lastReturn.Refund)
	}
}

func TestSubmitRejectsQuantityAboveRemaining(t *testing.T) {
	// Two units look free on the line item, but one is held by a pending
	// return, so only one may be selected.
	item := testItem(2, 0)
	order := submitOrder(item)
	order.Returns = []orders.ReturnRecord{{
		ID:     uuid.New(),
		Status: enums.ReturnStatusRequested,
		Items:  []orders.ReturnLine{{ItemID: item.ID, Quantity: 1}},
	}}

	transport := &stubTransport{}
	sub := newTestSubmitter(t, &stubReader{snapshot: order}, transport)

	sel := Selection{Returns: ReturnSelection{item.ID: {Quantity: 2}}}
	_, err := sub.SubmitReturn(context.Background(), order.ID, sel)
	requireValidationError(t, err)
	if transport.returns != 0 {
		t.Fatalf("transport must not be reached")
	}
}

func TestSubmitRejectsCanceledOrder(t *testing.T) {
	item := testItem(1, 0)
	order := submitOrder(item)
	now := time.Now()
	order.CanceledAt = &now

	sub := newTestSubmitter(t, &stubReader{snapshot: order}, &stubTransport{})

	_, err := sub.SubmitReturn(context.Background(), order.ID, Selection{
		Returns: ReturnSelection{item.ID: {Quantity: 1}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeConflict {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeConflict, code)
	}
}

func TestSubmitRejectsUnknownItem(t *testing.T) {
	order := submitOrder(testItem(1, 0))
	sub := newTestSubmitter(t, &stubReader{snapshot: order}, &stubTransport{})

	_, err := sub.SubmitReturn(context.Background(), order.ID, Selection{
		Returns: ReturnSelection{uuid.New(): {Quantity: 1}},
	})
	requireValidationError(t, err)
}

func TestSubmitSwapPassesBuiltRequest(t *testing.T) {
	item := testItem(2, 0)
	order := submitOrder(item)
	transport := &stubTransport{}
	sub := newTestSubmitter(t, &stubReader{snapshot: order}, transport)

	sel := Selection{
		Returns:         ReturnSelection{item.ID: {Quantity: 1}},
		AdditionalItems: []AdditionalItem{{VariantID: uuid.New(), Quantity: 2}},
	}
	result, err := sub.SubmitSwap(context.Background(), order.ID, sel)
	if err != nil {
		t.Fatalf("submit swap: %v", err)
	}
	if result.SwapID == nil {
		t.Fatalf("expected swap id")
	}
	if len(transport.lastSwap.ReturnItems) != 1 {
		t.Fatalf("expected 1 return item, got %d", len(transport.lastSwap.ReturnItems))
	}
	if len(transport.lastSwap.AdditionalItems) != 1 {
		t.Fatalf("expected 1 additional item, got %d", len(transport.lastSwap.AdditionalItems))
	}
}

func TestSubmitClaimByType(t *testing.T) {
	item := testItem(2, 0)
	order := submitOrder(item)
	transport := &stubTransport{}
	sub := newTestSubmitter(t, &stubReader{snapshot: order}, transport)

	sel := Selection{Returns: ReturnSelection{item.ID: {Quantity: 1}}}
	result, err := sub.SubmitClaim(context.Background(), order.ID, enums.ClaimTypeRefund, sel)
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}
	if result.ClaimID == nil {
		t.Fatalf("expected claim id")
	}
	if transport.lastClaim.Type != enums.ClaimTypeRefund {
		t.Fatalf("expected refund claim, got %s", transport.lastClaim.Type)
	}
}

func TestSubmitSurfacesBackendRejection(t *testing.T) {
	item := testItem(1, 0)
	order := submitOrder(item)
	backendErr := pkgerrors.New(pkgerrors.CodeSubmission, "refund exceeds order total")
	sub := newTestSubmitter(t, &stubReader{snapshot: order}, &stubTransport{err: backendErr})

	_, err := sub.SubmitReturn(context.Background(), order.ID, Selection{
		Returns: ReturnSelection{item.ID: {Quantity: 1}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeSubmission {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeSubmission, typed.Code())
	}
	if typed.Message() != "refund exceeds order total" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestSubmitReaderFailurePropagates(t *testing.T) {
	readerErr := pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	sub := newTestSubmitter(t, &stubReader{err: readerErr}, &stubTransport{})

	_, err := sub.SubmitReturn(context.Background(), uuid.New(), Selection{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeNotFound, code)
	}
}
