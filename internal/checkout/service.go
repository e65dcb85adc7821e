// Package checkout drives the info → review → success purchase flow and
// computes the amount charged.
package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Iphycodes/odg/internal/buynow"
	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/delivery"
	"github.com/Iphycodes/odg/pkg/enums"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/metrics"
	"github.com/Iphycodes/odg/pkg/paystack"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

type paymentGateway interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.Transaction, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyResult, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Logger  *logger.Logger
	Cart    cart.Service
	BuyNow  buynow.Service
	Gateway paymentGateway
	Metrics *metrics.StorefrontMetrics
}

// Service is the per-session checkout state machine. Checkout state lives
// only in memory; abandoning the process abandons the flow.
type Service interface {
	Begin(ctx context.Context, sessionID string, mode enums.CheckoutMode) (*State, error)
	State(ctx context.Context, sessionID string) (*State, error)
	SubmitInfo(ctx context.Context, sessionID string, info CustomerInfo) (*State, error)
	Back(ctx context.Context, sessionID string) (*State, error)
	Pay(ctx context.Context, sessionID string) (*PaymentIntent, error)
	Confirm(ctx context.Context, sessionID, reference string) (*State, error)
	Cancel(ctx context.Context, sessionID string) (*State, error)
}

type service struct {
	logg    *logger.Logger
	cart    cart.Service
	buynow  buynow.Service
	gateway paymentGateway
	metrics *metrics.StorefrontMetrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	if params.BuyNow == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buy-now service is required")
	}
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment gateway is required")
	}
	return &service{
		logg:     params.Logger,
		cart:     params.Cart,
		buynow:   params.BuyNow,
		gateway:  params.Gateway,
		metrics:  params.Metrics,
		now:      time.Now,
		sessions: make(map[string]*session),
	}, nil
}

// Begin starts (or restarts) a checkout for the session in the given mode.
// An empty item source yields an empty state with progression blocked.
func (s *service) Begin(ctx context.Context, sessionID string, mode enums.CheckoutMode) (*State, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout mode")
	}
	sess := &session{mode: mode, step: enums.CheckoutStepInfo}
	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()
	return s.view(ctx, sessionID, sess), nil
}

// State returns the current snapshot, recomputing pricing from the live
// item source.
func (s *service) State(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(ctx, sessionID, sess), nil
}

// SubmitInfo validates the customer details and advances info → review.
// Re-submission from review is allowed and recomputes the delivery quote.
func (s *service) SubmitInfo(ctx context.Context, sessionID string, info CustomerInfo) (*State, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.step == enums.CheckoutStepSuccess {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already completed")
	}
	if len(s.items(ctx, sessionID, sess)) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no items to check out")
	}

	trimmed := info.trimmed()
	if err := validate.Struct(trimmed); err != nil {
		return nil, formatValidationErrors(err)
	}

	sess.info = &trimmed
	sess.step = enums.CheckoutStepReview
	return s.view(ctx, sessionID, sess), nil
}

// Back steps review → info. From info it abandons the flow: the buy-now
// slot is cleared (a staged single-item purchase does not survive leaving)
// and the session is discarded.
func (s *service) Back(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	switch sess.step {
	case enums.CheckoutStepReview:
		sess.step = enums.CheckoutStepInfo
		return s.view(ctx, sessionID, sess), nil
	case enums.CheckoutStepInfo:
		s.buynow.Clear(ctx, sessionID)
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot go back from a completed checkout")
}

// Pay initializes a gateway transaction for the current total and returns
// the hosted payment handoff.
func (s *service) Pay(ctx context.Context, sessionID string) (*PaymentIntent, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.step != enums.CheckoutStepReview || sess.info == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not ready for payment")
	}
	items := s.items(ctx, sessionID, sess)
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no items to check out")
	}

	quote := delivery.Resolve(sess.info.State)
	total := subtotal(items) + quote.Fee
	reference := fmt.Sprintf("ODG-%d", s.now().UnixMilli())

	tx, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Reference:  reference,
		Email:      sess.info.Email,
		AmountKobo: total,
		Metadata:   paymentMetadata(sess.info, items),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "initialize payment")
	}

	sess.reference = reference
	return &PaymentIntent{
		Reference:        reference,
		AuthorizationURL: tx.AuthorizationURL,
		AccessCode:       tx.AccessCode,
		Amount:           total,
	}, nil
}

// Confirm records a successful payment callback: the active item source is
// cleared, the flow lands on success, and the reference is retained for
// display. A blank reference is tolerated. Non-blank references are
// verified with the gateway before the state advances.
func (s *service) Confirm(ctx context.Context, sessionID, reference string) (*State, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.step != enums.CheckoutStepReview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is not awaiting payment")
	}

	if reference != "" {
		result, err := s.gateway.VerifyTransaction(ctx, reference)
		if err != nil {
			s.metrics.IncCheckoutOutcome("verify_failed")
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify payment")
		}
		if !result.Succeeded() {
			s.metrics.IncCheckoutOutcome("verify_failed")
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment not confirmed by gateway")
		}
	}

	sess.frozen = s.items(ctx, sessionID, sess)
	if sess.mode == enums.CheckoutModeCart {
		s.cart.Clear(ctx, sessionID)
	}
	s.buynow.Clear(ctx, sessionID)
	sess.step = enums.CheckoutStepSuccess
	sess.reference = reference
	s.metrics.IncCheckoutOutcome("success")
	return s.view(ctx, sessionID, sess), nil
}

// Cancel records an abandoned payment attempt. The flow stays at review
// and nothing is cleared; the shopper can retry.
func (s *service) Cancel(ctx context.Context, sessionID string) (*State, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.step == enums.CheckoutStepReview {
		s.metrics.IncCheckoutOutcome("cancelled")
		s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "payment cancelled, shopper can retry")
	}
	return s.view(ctx, sessionID, sess), nil
}

func (s *service) session(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout for session")
	}
	return sess, nil
}

// items returns the active item source: the frozen snapshot after success,
// the staged buy-now item in buy-now mode, otherwise the resolved cart.
func (s *service) items(ctx context.Context, sessionID string, sess *session) []cart.ResolvedItem {
	if sess.frozen != nil {
		return sess.frozen
	}
	if sess.mode == enums.CheckoutModeBuyNow {
		item := s.buynow.Get(ctx, sessionID)
		if item == nil {
			return nil
		}
		return []cart.ResolvedItem{*item}
	}
	return s.cart.ResolvedItems(ctx, sessionID)
}

func (s *service) view(ctx context.Context, sessionID string, sess *session) *State {
	items := s.items(ctx, sessionID, sess)
	state := &State{
		Mode:      sess.mode,
		Step:      sess.step,
		Empty:     len(items) == 0 && sess.step != enums.CheckoutStepSuccess,
		Items:     items,
		Info:      sess.info,
		Subtotal:  subtotal(items),
		Reference: sess.reference,
	}
	state.Total = state.Subtotal
	if sess.info != nil && sess.info.State != "" {
		quote := delivery.Resolve(sess.info.State)
		state.Delivery = &quote
		state.Total += quote.Fee
	}
	return state
}

func subtotal(items []cart.ResolvedItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// paymentMetadata mirrors the custom fields shown on the gateway dashboard.
func paymentMetadata(info *CustomerInfo, items []cart.ResolvedItem) map[string]any {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s x%d - ID: %s", item.Name, item.Quantity, item.ItemID))
	}
	return map[string]any{
		"custom_fields": []map[string]string{
			{"display_name": "Customer Name", "variable_name": "customer_name", "value": info.FullName},
			{"display_name": "Phone Number", "variable_name": "phone_number", "value": info.Phone},
			{"display_name": "WhatsApp Number", "variable_name": "whatsapp_number", "value": info.WhatsApp},
			{"display_name": "Delivery Address", "variable_name": "delivery_address", "value": fmt.Sprintf("%s, %s, %s", info.Address, info.City, info.State)},
			{"display_name": "Items", "variable_name": "items", "value": strings.Join(lines, ", ")},
		},
	}
}

func formatValidationErrors(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	details := map[string]string{}
	for _, fieldErr := range errs {
		if fieldErr.Tag() == "email" {
			details[fieldErr.Field()] = "must be a valid email"
			continue
		}
		details[fieldErr.Field()] = "is required"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "customer info is incomplete").WithDetails(details)
}
