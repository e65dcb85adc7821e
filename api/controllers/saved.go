package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Iphycodes/odg/api/middleware"
	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/api/validators"
	"github.com/Iphycodes/odg/internal/catalog"
	"github.com/Iphycodes/odg/internal/saved"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
)

type saveItemPayload struct {
	ItemID string `json:"item_id" validate:"required"`
}

// SavedList returns saved items resolved against the catalog; ids that no
// longer resolve are dropped from the view but stay persisted.
func SavedList(svc saved.Service, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved-items service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		ids := svc.List(ctx, sessionID)
		items := make([]catalogItemView, 0, len(ids))
		for _, id := range ids {
			item, ok := store.FindItemByID(id)
			if !ok {
				continue
			}
			items = append(items, viewItem(*item))
		}
		responses.WriteSuccess(w, map[string]any{"items": items, "count": len(items)})
	}
}

// SavedToggle flips membership for an item and reports the new state.
func SavedToggle(svc saved.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved-items service unavailable"))
			return
		}

		var payload saveItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		nowSaved := svc.Toggle(ctx, sessionID, payload.ItemID)
		responses.WriteSuccess(w, map[string]any{"item_id": payload.ItemID, "saved": nowSaved})
	}
}

// SavedRemove drops an item from the saved set.
func SavedRemove(svc saved.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "saved-items service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(ctx)
		svc.Remove(ctx, sessionID, chi.URLParam(r, "id"))
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
