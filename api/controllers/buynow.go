package controllers

import (
	"net/http"

	"github.com/Iphycodes/odg/api/middleware"
	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/api/validators"
	"github.com/Iphycodes/odg/internal/buynow"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
)

type stageBuyNowPayload struct {
	ItemID string `json:"item_id" validate:"required"`
}

// BuyNowStage fills the single buy-now slot with a quantity-1 snapshot of
// the item, overwriting any prior staging.
func BuyNowStage(svc buynow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "buy-now service unavailable"))
			return
		}

		var payload stageBuyNowPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		if !svc.Stage(ctx, sessionID, payload.ItemID) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not found"))
			return
		}
		responses.WriteSuccess(w, svc.Get(ctx, sessionID))
	}
}

// BuyNowGet returns the staged item, or null when the slot is empty.
func BuyNowGet(svc buynow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "buy-now service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		responses.WriteSuccess(w, svc.Get(ctx, sessionID))
	}
}

// BuyNowClear empties the slot.
func BuyNowClear(svc buynow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "buy-now service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		svc.Clear(ctx, sessionID)
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
