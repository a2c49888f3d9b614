package orders

import (
	"net/http"

	"github.com/oakline/backoffice-backend/api/responses"
	internalorders "github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/internal/shipping"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/logger"
)

// ShippingOptions lists the return shipping options for the order's region.
func ShippingOptions(ordersSvc internalorders.Service, shippingSvc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ordersSvc == nil || shippingSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
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

		snapshot, err := ordersSvc.GetSnapshot(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		options, err := shippingSvc.ReturnOptions(ctx, snapshot.RegionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"shipping_options": options})
	}
}
