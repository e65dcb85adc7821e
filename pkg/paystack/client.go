package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Iphycodes/odg/pkg/config"
	"github.com/Iphycodes/odg/pkg/logger"
)

var errSecretKeyRequired = errors.New("paystack secret key is required")

// Client wraps Paystack's transaction REST API. Amounts are kobo throughout,
// matching both Paystack's wire format and the storefront's money model.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	secretKey   string
	callbackURL string
}

// InitializeRequest captures the inputs for creating a hosted payment page.
type InitializeRequest struct {
	Reference  string         `json:"reference"`
	Email      string         `json:"email"`
	AmountKobo int64          `json:"amount"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Transaction is the handle Paystack returns for an initialized payment.
type Transaction struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyResult reports the gateway-side status of a transaction.
type VerifyResult struct {
	Status     string `json:"status"`
	Reference  string `json:"reference"`
	AmountKobo int64  `json:"amount"`
}

// Succeeded reports whether the gateway marked the transaction paid.
func (v *VerifyResult) Succeeded() bool {
	return v != nil && v.Status == "success"
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient builds a Paystack client from configuration.
func NewClient(ctx context.Context, cfg config.PaystackConfig, logg *logger.Logger) (*Client, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return nil, errSecretKeyRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	if logg != nil {
		logg.Info(ctx, "paystack client initialized")
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		secretKey:   secret,
		callbackURL: strings.TrimSpace(cfg.CallbackURL),
	}, nil
}

// InitializeTransaction creates a pending transaction and returns the hosted
// authorization handle the shopper completes payment against.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*Transaction, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, errors.New("payer email is required")
	}
	if req.AmountKobo <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", req.AmountKobo)
	}

	payload := map[string]any{
		"email":     req.Email,
		"amount":    req.AmountKobo,
		"reference": req.Reference,
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}
	if c.callbackURL != "" {
		payload["callback_url"] = c.callbackURL
	}

	var tx Transaction
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// VerifyTransaction asks the gateway for the terminal status of a reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errors.New("transaction reference is required")
	}

	var result VerifyResult
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding paystack payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling paystack: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading paystack response: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding paystack response (http %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !envelope.Status {
		return fmt.Errorf("paystack request failed (http %d): %s", resp.StatusCode, envelope.Message)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding paystack data: %w", err)
		}
	}
	return nil
}
