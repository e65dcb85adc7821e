package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Iphycodes/odg/api/middleware"
	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/api/validators"
	"github.com/Iphycodes/odg/internal/cart"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/types"
)

type addCartItemPayload struct {
	ItemID string `json:"item_id" validate:"required"`
}

type setQuantityPayload struct {
	Quantity int `json:"quantity"`
}

type cartLineView struct {
	cart.ResolvedItem
	UnitPriceDisplay string `json:"unit_price_display"`
	Subtotal         int64  `json:"subtotal"`
}

type cartView struct {
	Items        []cartLineView `json:"items"`
	Count        int            `json:"count"`
	Total        int64          `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

func buildCartView(r *http.Request, svc cart.Service, sessionID string) cartView {
	ctx := r.Context()
	resolved := svc.ResolvedItems(ctx, sessionID)
	lines := make([]cartLineView, 0, len(resolved))
	for _, item := range resolved {
		lines = append(lines, cartLineView{
			ResolvedItem:     item,
			UnitPriceDisplay: types.FormatNaira(item.UnitPrice),
			Subtotal:         item.Subtotal(),
		})
	}
	total := svc.Total(ctx, sessionID)
	return cartView{
		Items:        lines,
		Count:        svc.Count(ctx, sessionID),
		Total:        total,
		TotalDisplay: types.FormatNaira(total),
	}
}

// CartGet returns the session's resolved cart with totals.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		responses.WriteSuccess(w, buildCartView(r, svc, sessionID))
	}
}

// CartAddItem adds one unit of an item. Hitting the stock cap is not an
// error; the response carries added=false so the frontend can show a
// warning.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		added := svc.AddItem(ctx, sessionID, payload.ItemID)
		responses.WriteSuccess(w, map[string]any{
			"added": added,
			"cart":  buildCartView(r, svc, sessionID),
		})
	}
}

// CartSetQuantity sets the quantity for an item; zero or less removes it.
func CartSetQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload setQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		svc.SetQuantity(ctx, sessionID, chi.URLParam(r, "id"), payload.Quantity)
		responses.WriteSuccess(w, buildCartView(r, svc, sessionID))
	}
}

// CartRemoveItem drops an item from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		svc.RemoveItem(ctx, sessionID, chi.URLParam(r, "id"))
		responses.WriteSuccess(w, buildCartView(r, svc, sessionID))
	}
}

// CartClear empties the cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		svc.Clear(ctx, sessionID)
		responses.WriteSuccess(w, buildCartView(r, svc, sessionID))
	}
}
