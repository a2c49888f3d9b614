package orders

import (
	"net/http"

	"github.com/oakline/backoffice-backend/api/responses"
	"github.com/oakline/backoffice-backend/api/validators"
	internalorders "github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/internal/rma"
	"github.com/oakline/backoffice-backend/pkg/currency"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/logger"
)

type balanceResponse struct {
	ReturnTotal     string `json:"return_total"`
	AdditionalTotal string `json:"additional_total"`
	ShippingAmount  string `json:"shipping_amount"`
	NetDifference   string `json:"net_difference"`

	ReturnTotalCents     int64 `json:"return_total_cents"`
	AdditionalTotalCents int64 `json:"additional_total_cents"`
	ShippingAmountCents  int64 `json:"shipping_amount_cents"`
	NetDifferenceCents   int64 `json:"net_difference_cents"`

	CurrencyCode string `json:"currency_code"`
}

// Balance previews the monetary outcome of a modification without
// submitting anything.
func Balance(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var req selectionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snapshot, err := svc.GetSnapshot(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sel, err := req.toSelection(ctx, svc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		balance, err := rma.ComputeBalance(snapshot, sel)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		code := snapshot.CurrencyCode
		responses.WriteSuccess(w, balanceResponse{
			ReturnTotal:          currency.Format(code, currency.RoundMinor(balance.ReturnTotal)),
			AdditionalTotal:      currency.Format(code, currency.RoundMinor(balance.AdditionalTotal)),
			ShippingAmount:       currency.Format(code, currency.RoundMinor(balance.ShippingAmount)),
			NetDifference:        currency.Format(code, currency.RoundMinor(balance.NetDifference)),
			ReturnTotalCents:     currency.RoundMinor(balance.ReturnTotal),
			AdditionalTotalCents: currency.RoundMinor(balance.AdditionalTotal),
			ShippingAmountCents:  currency.RoundMinor(balance.ShippingAmount),
			NetDifferenceCents:   currency.RoundMinor(balance.NetDifference),
			CurrencyCode:         code,
		})
	}
}
