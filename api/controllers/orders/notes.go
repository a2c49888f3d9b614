package orders

import (
	"net/http"

	"github.com/oakline/backoffice-backend/api/responses"
	"github.com/oakline/backoffice-backend/api/validators"
	internalorders "github.com/oakline/backoffice-backend/internal/orders"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/logger"
)

// CreateNote records an operator note against the order.
func CreateNote(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req noteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		note, err := svc.AddNote(ctx, orderID, req.Value, req.AuthorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, note)
	}
}
