package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the MercadoPago Checkout Pro / Payments API. All business
// state stays on our side; the gateway is the authority only for the status
// of its own payment objects.
type Client struct {
	accessToken string
	baseURL     *url.URL

	successBackURL  string
	failureBackURL  string
	pendingBackURL  string
	notificationURL string

	httpClient *http.Client
	loggerf    func(format string, args ...interface{})
}

type Config struct {
	AccessToken string
	// BaseURL defaults to the production API host.
	BaseURL string

	SuccessBackURL  string
	FailureBackURL  string
	PendingBackURL  string
	NotificationURL string

	HTTPClient *http.Client
	Loggerf    func(format string, args ...interface{})
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("mercadopago: access token is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.mercadopago.com"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	loggerf := cfg.Loggerf
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Client{
		accessToken:     cfg.AccessToken,
		baseURL:         u,
		successBackURL:  cfg.SuccessBackURL,
		failureBackURL:  cfg.FailureBackURL,
		pendingBackURL:  cfg.PendingBackURL,
		notificationURL: cfg.NotificationURL,
		httpClient:      hc,
		loggerf:         loggerf,
	}, nil
}

type PreferenceRequest struct {
	Title       string
	Description string
	Amount      float64
	PayerEmail  string
	ExternalRef string
}

type preferenceItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	CurrencyID  string  `json:"currency_id"`
}

type preferencePayload struct {
	Items             []preferenceItem  `json:"items"`
	Payer             map[string]string `json:"payer,omitempty"`
	ExternalReference string            `json:"external_reference"`
	BackURLs          map[string]string `json:"back_urls,omitempty"`
	AutoReturn        string            `json:"auto_return,omitempty"`
	NotificationURL   string            `json:"notification_url,omitempty"`
}

type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// CreatePreference registers a hosted-checkout preference and returns the
// redirect handle the client is sent to.
func (c *Client) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	payload := preferencePayload{
		Items: []preferenceItem{{
			Title:       req.Title,
			Description: req.Description,
			Quantity:    1,
			UnitPrice:   req.Amount,
			CurrencyID:  "UYU",
		}},
		ExternalReference: req.ExternalRef,
		AutoReturn:        "approved",
		NotificationURL:   c.notificationURL,
	}
	if req.PayerEmail != "" {
		payload.Payer = map[string]string{"email": req.PayerEmail}
	}
	if c.successBackURL != "" || c.failureBackURL != "" || c.pendingBackURL != "" {
		payload.BackURLs = map[string]string{
			"success": c.successBackURL,
			"failure": c.failureBackURL,
			"pending": c.pendingBackURL,
		}
	}

	var out Preference
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", payload, http.StatusCreated, &out, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" || strings.TrimSpace(out.InitPoint) == "" {
		return nil, fmt.Errorf("mercadopago: preference response missing id or init_point")
	}
	return &out, nil
}

type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
}

// GetPayment fetches the authoritative state of a gateway payment.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var out Payment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(id), nil, http.StatusOK, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

type CardPaymentRequest struct {
	Token           string
	Amount          float64
	Description     string
	Installments    int
	PaymentMethodID string
	PayerEmail      string
	ExternalRef     string
}

type cardPaymentPayload struct {
	Token             string            `json:"token"`
	TransactionAmount float64           `json:"transaction_amount"`
	Description       string            `json:"description,omitempty"`
	Installments      int               `json:"installments"`
	PaymentMethodID   string            `json:"payment_method_id"`
	Payer             map[string]string `json:"payer"`
	ExternalReference string            `json:"external_reference,omitempty"`
}

// CreateCardPayment charges a tokenised card directly (subscription billing).
// Each call carries a fresh idempotency key.
func (c *Client) CreateCardPayment(ctx context.Context, req CardPaymentRequest) (*Payment, error) {
	installments := req.Installments
	if installments <= 0 {
		installments = 1
	}
	payload := cardPaymentPayload{
		Token:             req.Token,
		TransactionAmount: req.Amount,
		Description:       req.Description,
		Installments:      installments,
		PaymentMethodID:   req.PaymentMethodID,
		Payer:             map[string]string{"email": req.PayerEmail},
		ExternalReference: req.ExternalRef,
	}
	headers := map[string]string{"X-Idempotency-Key": uuid.NewString()}

	var out Payment
	if err := c.do(ctx, http.MethodPost, "/v1/payments", payload, http.StatusCreated, &out, headers); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, wantStatus int, out any, headers map[string]string) error {
	u := *c.baseURL
	u.Path = path.Join(u.Path, endpoint)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mercadopago request: %w", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		c.loggerf("level=error msg=mercadopago non-2xx method=%s path=%s status=%s body=%s", method, endpoint, resp.Status, truncate(string(b), 2000))
		return &GatewayError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			return fmt.Errorf("decode mercadopago response: %w", err)
		}
	}
	return nil
}

// GatewayError carries the gateway's HTTP status and body verbatim so
// callers can surface it for diagnosis.
type GatewayError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *GatewayError) Error() string {
	if e == nil {
		return "<nil>"
	}
	b := strings.TrimSpace(e.Body)
	if b == "" {
		return fmt.Sprintf("mercadopago error: %s", e.Status)
	}
	return fmt.Sprintf("mercadopago error: %s: %s", e.Status, b)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
