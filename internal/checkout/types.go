package checkout

import (
	"strings"
	"sync"

	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/delivery"
	"github.com/Iphycodes/odg/pkg/enums"
)

// CustomerInfo is the delivery contact captured at the info step. It lives
// only in memory for the duration of the checkout; it is never persisted.
type CustomerInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	WhatsApp string `json:"whatsapp" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
}

func (c CustomerInfo) trimmed() CustomerInfo {
	return CustomerInfo{
		FullName: strings.TrimSpace(c.FullName),
		Email:    strings.TrimSpace(c.Email),
		Phone:    strings.TrimSpace(c.Phone),
		WhatsApp: strings.TrimSpace(c.WhatsApp),
		Address:  strings.TrimSpace(c.Address),
		City:     strings.TrimSpace(c.City),
		State:    strings.TrimSpace(c.State),
	}
}

// State is the externally visible checkout snapshot. Delivery is nil until
// a region has been chosen, which callers must distinguish from a zero fee.
type State struct {
	Mode      enums.CheckoutMode  `json:"mode"`
	Step      enums.CheckoutStep  `json:"step"`
	Empty     bool                `json:"empty"`
	Items     []cart.ResolvedItem `json:"items"`
	Info      *CustomerInfo       `json:"customer_info,omitempty"`
	Subtotal  int64               `json:"subtotal"`
	Delivery  *delivery.Quote     `json:"delivery,omitempty"`
	Total     int64               `json:"total"`
	Reference string              `json:"payment_reference,omitempty"`
}

// PaymentIntent is the handoff to the gateway's hosted payment page.
type PaymentIntent struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Amount           int64  `json:"amount"`
}

// session is the in-memory checkout record for one storefront session.
// Its mutex serializes concurrent requests for the same shopper; distinct
// sessions never contend.
type session struct {
	mu        sync.Mutex
	mode      enums.CheckoutMode
	step      enums.CheckoutStep
	info      *CustomerInfo
	reference string
	// snapshot of the item source, frozen at payment success for the
	// success screen; nil while the flow is live (items are re-read).
	frozen []cart.ResolvedItem
}
