package controllers

import (
	"net/http"

	"github.com/Iphycodes/odg/api/middleware"
	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/api/validators"
	"github.com/Iphycodes/odg/internal/checkout"
	"github.com/Iphycodes/odg/pkg/enums"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
)

type beginCheckoutPayload struct {
	Mode string `json:"mode"`
}

type confirmPaymentPayload struct {
	Reference string `json:"reference"`
}

// CheckoutBegin starts a checkout in cart or buy-now mode. Omitting the
// mode defaults to cart.
func CheckoutBegin(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload beginCheckoutPayload
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		mode, err := enums.ParseCheckoutMode(payload.Mode)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout mode"))
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		state, err := svc.Begin(ctx, sessionID, mode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutState returns the live checkout snapshot.
func CheckoutState(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		state, err := svc.State(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutSubmitInfo validates customer details and advances to review.
func CheckoutSubmitInfo(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var info checkout.CustomerInfo
		if err := validators.DecodeJSONBody(r, &info); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.SubmitInfo(ctx, middleware.SessionIDFromContext(ctx), info)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutBack steps review → info, or abandons the flow from info.
func CheckoutBack(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		state, err := svc.Back(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if state == nil {
			responses.WriteSuccess(w, map[string]string{"status": "abandoned"})
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutPay initializes a gateway transaction for the current total.
func CheckoutPay(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		intent, err := svc.Pay(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, intent)
	}
}

// CheckoutConfirm records the gateway success callback.
func CheckoutConfirm(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload confirmPaymentPayload
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		state, err := svc.Confirm(ctx, middleware.SessionIDFromContext(ctx), payload.Reference)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutCancel records an abandoned payment attempt; nothing is cleared.
func CheckoutCancel(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		state, err := svc.Cancel(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}
