package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/api/validators"
	"github.com/Iphycodes/odg/internal/catalog"
	"github.com/Iphycodes/odg/pkg/enums"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/types"
)

type catalogItemView struct {
	catalog.Item
	UnitPriceDisplay string `json:"unit_price_display"`
	InStock          bool   `json:"in_stock"`
}

func viewItem(item catalog.Item) catalogItemView {
	return catalogItemView{
		Item:             item,
		UnitPriceDisplay: types.FormatNaira(item.UnitPrice),
		InStock:          item.InStock(),
	}
}

// CatalogList returns catalog items matching the query-string filters.
func CatalogList(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		filters := catalog.ListFilters{
			Query:       strings.TrimSpace(r.URL.Query().Get("q")),
			Category:    strings.TrimSpace(r.URL.Query().Get("category")),
			InStockOnly: r.URL.Query().Get("in_stock") == "true",
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("condition")); raw != "" {
			condition, err := enums.ParseItemCondition(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition"))
				return
			}
			filters.Condition = condition
		}

		minPrice, err := validators.ParseQueryKobo(r, "min_price")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryKobo(r, "max_price")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filters.MinPrice = minPrice
		filters.MaxPrice = maxPrice

		items := store.List(filters)
		views := make([]catalogItemView, 0, len(items))
		for _, item := range items {
			views = append(views, viewItem(item))
		}
		responses.WriteSuccess(w, map[string]any{"items": views, "count": len(views)})
	}
}

// CatalogGet returns a single item by id.
func CatalogGet(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id := chi.URLParam(r, "id")
		item, ok := store.FindItemByID(id)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not found"))
			return
		}
		responses.WriteSuccess(w, viewItem(*item))
	}
}
