package controllers

import (
	"net/http"
	"strings"

	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/internal/delivery"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/metrics"
	"github.com/Iphycodes/odg/pkg/types"
)

// DeliveryQuote resolves the flat delivery fee for a region. Unknown
// regions get the standard tier, never an error.
func DeliveryQuote(logg *logger.Logger, m *metrics.StorefrontMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := strings.TrimSpace(r.URL.Query().Get("region"))
		quote := delivery.Resolve(region)
		m.IncDeliveryLookup(quote.Zone.String())
		responses.WriteSuccess(w, map[string]any{
			"region":      region,
			"zone":        quote.Zone,
			"label":       quote.Label,
			"fee":         quote.Fee,
			"fee_display": types.FormatNaira(quote.Fee),
		})
	}
}
