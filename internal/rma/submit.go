package rma

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/pkg/enums"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/metrics"
)

var (
	errOrdersRequired    = errors.New("rma submitter requires an orders service")
	errTransportRequired = errors.New("rma submitter requires a transport")
)

// OrderReader is the slice of the orders service the submitter needs.
type OrderReader interface {
	GetSnapshot(ctx context.Context, orderID uuid.UUID) (*orders.Snapshot, error)
}

// Submitter validates a selection against the live order state and submits
// the built payload. The snapshot is fetched fresh on every call so stale
// operator views cannot over-return.
type Submitter struct {
	orders    OrderReader
	transport Transport
	metrics   *metrics.SubmissionMetrics
}

// NewSubmitter wires the submitter and validates its dependencies. Metrics
// may be nil when no registry is configured.
func NewSubmitter(reader OrderReader, transport Transport, m *metrics.SubmissionMetrics) (*Submitter, error) {
	if reader == nil {
		return nil, errOrdersRequired
	}
	if transport == nil {
		return nil, errTransportRequired
	}
	return &Submitter{orders: reader, transport: transport, metrics: m}, nil
}

// SubmitSwap validates and submits a swap for the order.
func (s *Submitter) SubmitSwap(ctx context.Context, orderID uuid.UUID, sel Selection) (*SubmissionResult, error) {
	order, err := s.loadAndValidate(ctx, orderID, sel)
	if err != nil {
		return nil, err
	}
	req, err := BuildSwapRequest(order, sel)
	if err != nil {
		return nil, err
	}
	return s.observe(ctx, "swap", func(ctx context.Context) (*SubmissionResult, error) {
		return s.transport.CreateSwap(ctx, orderID, req)
	})
}

// SubmitReturn validates and submits a standalone return. The refund amount
// is recomputed server side from the fresh snapshot.
func (s *Submitter) SubmitReturn(ctx context.Context, orderID uuid.UUID, sel Selection) (*SubmissionResult, error) {
	order, err := s.loadAndValidate(ctx, orderID, sel)
	if err != nil {
		return nil, err
	}
	balance, err := ComputeBalance(order, Selection{Returns: sel.Returns, Shipping: sel.Shipping})
	if err != nil {
		return nil, err
	}
	req, err := BuildReturnRequest(order, sel, balance)
	if err != nil {
		return nil, err
	}
	return s.observe(ctx, "return", func(ctx context.Context) (*SubmissionResult, error) {
		return s.transport.CreateReturn(ctx, orderID, req)
	})
}

// SubmitClaim validates and submits a claim of the given type.
func (s *Submitter) SubmitClaim(ctx context.Context, orderID uuid.UUID, claimType enums.ClaimType, sel Selection) (*SubmissionResult, error) {
	order, err := s.loadAndValidate(ctx, orderID, sel)
	if err != nil {
		return nil, err
	}
	req, err := BuildClaimRequest(order, claimType, sel)
	if err != nil {
		return nil, err
	}
	return s.observe(ctx, "claim", func(ctx context.Context) (*SubmissionResult, error) {
		return s.transport.CreateClaim(ctx, orderID, req)
	})
}

// loadAndValidate fetches the current snapshot and checks every selected
// return line against the quantity still available once pending returns and
// open claims are accounted for.
func (s *Submitter) loadAndValidate(ctx context.Context, orderID uuid.UUID, sel Selection) (*orders.Snapshot, error) {
	order, err := s.orders.GetSnapshot(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CanceledAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is canceled")
	}

	views, err := ResolveReturnableItems(order)
	if err != nil {
		return nil, err
	}
	remaining := make(map[uuid.UUID]int, len(views))
	for _, view := range views {
		remaining[view.Item.ID] = view.Remaining
	}

	for itemID, item := range sel.Returns {
		avail, ok := remaining[itemID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("selected item %s is not on the order", itemID))
		}
		if item.Quantity < 1 || item.Quantity > avail {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %s quantity %d exceeds the %d still returnable", itemID, item.Quantity, avail))
		}
	}
	return order, nil
}

func (s *Submitter) observe(ctx context.Context, kind string, fn func(context.Context) (*SubmissionResult, error)) (*SubmissionResult, error) {
	start := time.Now()
	result, err := fn(ctx)
	s.metrics.ObserveDuration(kind, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(kind)
		return nil, err
	}
	s.metrics.IncSuccess(kind)
	return result, nil
}
