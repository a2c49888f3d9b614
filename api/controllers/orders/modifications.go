package orders

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/api/responses"
	"github.com/oakline/backoffice-backend/api/validators"
	internalorders "github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/internal/rma"
	"github.com/oakline/backoffice-backend/pkg/enums"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/logger"
)

// CreateSwap submits an exchange: selected returns plus replacement items.
func CreateSwap(svc internalorders.Service, submitter *rma.Submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, orderID, sel, ok := decodeSubmission(w, r, svc, submitter, logg)
		if !ok {
			return
		}
		result, err := submitter.SubmitSwap(ctx, orderID, sel)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CreateReturn submits a standalone return.
func CreateReturn(svc internalorders.Service, submitter *rma.Submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, orderID, sel, ok := decodeSubmission(w, r, svc, submitter, logg)
		if !ok {
			return
		}
		result, err := submitter.SubmitReturn(ctx, orderID, sel)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CreateClaim submits a refund or replace claim.
func CreateClaim(svc internalorders.Service, submitter *rma.Submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || submitter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submission service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID.String())
		}

		var req claimRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		claimType, err := enums.ParseClaimType(req.Type)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid claim type"))
			return
		}

		sel, err := req.toSelection(ctx, svc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := submitter.SubmitClaim(ctx, orderID, claimType, sel)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func decodeSubmission(w http.ResponseWriter, r *http.Request, svc internalorders.Service, submitter *rma.Submitter, logg *logger.Logger) (context.Context, uuid.UUID, rma.Selection, bool) {
	if svc == nil || submitter == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submission service unavailable"))
		return r.Context(), uuid.Nil, rma.Selection{}, false
	}

	orderID, err := parseOrderID(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return r.Context(), uuid.Nil, rma.Selection{}, false
	}

	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithOrderID(ctx, orderID.String())
	}

	var req selectionRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(ctx, logg, w, err)
		return ctx, uuid.Nil, rma.Selection{}, false
	}

	sel, err := req.toSelection(ctx, svc)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return ctx, uuid.Nil, rma.Selection{}, false
	}
	return ctx, orderID, sel, true
}
