// Package sideshift implements a strongly-typed HTTP client for the SideShift
// v1 REST API.
//
// Coverage: the four resources the swap pipeline needs — permission check,
// pair rate lookup, fixed quote creation, and order creation.
//
// Notes:
//   - Error payloads arrive as {"error": {"message": "..."}} and may come with
//     either a 2xx or a 4xx status. The body is classified before the status
//     is consulted, so a recognizable provider error never degrades into a
//     plain transport error.
//   - Amount fields arrive as decimal strings. Expiration fields arrive as
//     ISO-8601 strings or numeric epochs depending on endpoint version; both
//     are normalized to time.Time here so callers see one representation.
package sideshift

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Default HTTP timeouts tuned for server-side usage.
var (
	DefaultHTTPClient = &http.Client{Timeout: 30 * time.Second}
)

// Classified provider failures. The raw provider message stays attached via
// wrapping, so errors.Is works and nothing is lost from logs.
var (
	ErrPairUnavailable = errors.New("sideshift: pair unavailable")
	ErrAmountTooLow    = errors.New("sideshift: amount below pair minimum")
	ErrAmountTooHigh   = errors.New("sideshift: amount above pair maximum")
)

// HTTPError is a non-2xx or malformed response that carried no usable error
// payload. Treated as fatal by callers.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sideshift: http error %d: %s", e.StatusCode, e.Body)
}

// ProviderError is an error payload whose message matches no known tag.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "sideshift: " + e.Message
}

// RequestObserver receives one callback per HTTP exchange; outcome is "ok" or
// "error". Used to feed request counters.
type RequestObserver func(endpoint, outcome string, elapsed time.Duration)

// NewClient constructs a new API client. base should be like "https://sideshift.ai/api/v1".
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		BaseURL:   u,
		HTTP:      DefaultHTTPClient,
		UserAgent: "swapgate/1.0",
		Logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Option functional options.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }
func WithUserAgent(ua string) Option       { return func(c *Client) { c.UserAgent = ua } }

// WithLogger allows plugging in structured logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// WithObserver hooks per-request accounting, e.g. prometheus counters.
func WithObserver(obs RequestObserver) Option {
	return func(c *Client) { c.Observer = obs }
}

type Client struct {
	BaseURL   *url.URL
	HTTP      *http.Client
	UserAgent string
	Logger    zerolog.Logger // structured logger
	Observer  RequestObserver
}

// --- Core HTTP execution with logging ---
func (c *Client) do(ctx context.Context, method, p string, body any, out any) error {
	u := *c.BaseURL
	u.Path = path.Join(u.Path, p)

	// --- Build request body ---
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	// --- Build request ---
	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// --- Execute request ---
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(p, "error", time.Since(start))
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(p, "error", time.Since(start))
		return fmt.Errorf("read body: %w", err)
	}

	// --- Logging response ---
	c.Logger.Info().
		Str("method", method).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Str("duration", time.Since(start).String()).
		RawJSON("response", truncateJSON(b, 2048)). // safe logging
		Msg("http response")

	// --- Error payload check (takes precedence over the status line) ---
	var probe errorEnvelope
	if err := json.Unmarshal(b, &probe); err == nil && probe.Error != nil {
		c.observe(p, "error", time.Since(start))
		return classifyMessage(probe.Error.Message)
	}

	// --- Status check ---
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(p, "error", time.Since(start))
		return &HTTPError{StatusCode: resp.StatusCode, Body: truncateString(string(b), 512)}
	}

	// --- Decode output ---
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			c.observe(p, "error", time.Since(start))
			return &HTTPError{StatusCode: resp.StatusCode, Body: "unmarshal response: " + err.Error()}
		}
	}
	c.observe(p, "ok", time.Since(start))
	return nil
}

func (c *Client) observe(p, outcome string, elapsed time.Duration) {
	if c.Observer == nil {
		return
	}
	// Label by resource, not full path, to keep cardinality flat.
	endpoint := p
	if i := strings.IndexByte(endpoint, '/'); i > 0 {
		endpoint = endpoint[:i]
	}
	c.Observer(endpoint, outcome, elapsed)
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// classifyMessage maps a provider error message onto a sentinel. String
// matching happens only here; downstream code works with errors.Is/As.
func classifyMessage(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "too low"):
		return fmt.Errorf("%w: %s", ErrAmountTooLow, msg)
	case strings.Contains(lower, "too high"):
		return fmt.Errorf("%w: %s", ErrAmountTooHigh, msg)
	default:
		return &ProviderError{Message: msg}
	}
}

// --- Helpers ---
func truncateJSON(b []byte, max int) []byte {
	if len(b) > max {
		return b[:max]
	}
	return b
}

func truncateString(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// parseTimestamp accepts the provider's observed expiration encodings:
// ISO-8601 strings and numeric epochs (seconds or milliseconds, bare or
// quoted). Unrecognized values yield the zero time.
func parseTimestamp(raw json.RawMessage) time.Time {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return time.Time{}
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC()
	}
	return time.Time{}
}

// firstTimestamp prefers the primary encoding and falls back to the
// alternate one; order payloads carry both expiresAtISO and expiresAt.
func firstTimestamp(primary, fallback json.RawMessage) time.Time {
	if t := parseTimestamp(primary); !t.IsZero() {
		return t
	}
	return parseTimestamp(fallback)
}

// --- Permissions ---

// Permissions reports which operations the provider allows for the calling
// region/session.
type Permissions struct {
	CreateOrder bool `json:"createOrder"`
	CreateQuote bool `json:"createQuote"`
}

func (c *Client) Permissions(ctx context.Context) (Permissions, error) {
	var out Permissions
	if err := c.do(ctx, http.MethodGet, "permissions", nil, &out); err != nil {
		return Permissions{}, err
	}
	return out, nil
}

// --- Pairs ---

// Pair is the current price and tradable deposit range for a
// deposit-method/settle-method pair. Amounts are deposit-denominated.
type Pair struct {
	Rate decimal.Decimal `json:"rate"`
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
}

// Pair fetches the rate for depositMethod -> settleMethod. A provider error
// payload on this endpoint means the pair is not tradable.
func (c *Client) Pair(ctx context.Context, depositMethod, settleMethod string) (Pair, error) {
	p := "pairs/" + url.PathEscape(depositMethod) + "/" + url.PathEscape(settleMethod)
	var out Pair
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			return Pair{}, fmt.Errorf("%w: %s", ErrPairUnavailable, perr.Message)
		}
		return Pair{}, err
	}
	return out, nil
}

// --- Quotes ---

type QuoteRequest struct {
	DepositMethod string          `json:"depositMethod"`
	SettleMethod  string          `json:"settleMethod"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
}

// Quote is a provider-side fixed price lock with a short validity window.
type Quote struct {
	ID            string
	DepositMethod string
	SettleMethod  string
	DepositAmount decimal.Decimal
	SettleAmount  decimal.Decimal
	Rate          decimal.Decimal
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

type quotePayload struct {
	ID            string          `json:"id"`
	DepositMethod string          `json:"depositMethod"`
	SettleMethod  string          `json:"settleMethod"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	SettleAmount  decimal.Decimal `json:"settleAmount"`
	Rate          decimal.Decimal `json:"rate"`
	CreatedAt     json.RawMessage `json:"createdAt"`
	ExpiresAt     json.RawMessage `json:"expiresAt"`
}

// CreateQuote locks a fixed deposit -> settle price for DepositAmount.
// Amounts outside the tradable range come back as ErrAmountTooLow or
// ErrAmountTooHigh.
func (c *Client) CreateQuote(ctx context.Context, in QuoteRequest) (Quote, error) {
	var raw quotePayload
	if err := c.do(ctx, http.MethodPost, "quotes", in, &raw); err != nil {
		return Quote{}, err
	}
	return Quote{
		ID:            raw.ID,
		DepositMethod: raw.DepositMethod,
		SettleMethod:  raw.SettleMethod,
		DepositAmount: raw.DepositAmount,
		SettleAmount:  raw.SettleAmount,
		Rate:          raw.Rate,
		CreatedAt:     parseTimestamp(raw.CreatedAt),
		ExpiresAt:     parseTimestamp(raw.ExpiresAt),
	}, nil
}

// --- Orders ---

// OrderTypeFixed is the only order type this client creates.
const OrderTypeFixed = "fixed"

type OrderRequest struct {
	Type          string `json:"type"`
	QuoteID       string `json:"quoteId"`
	AffiliateID   string `json:"affiliateId"`
	SettleAddress string `json:"settleAddress"`
}

// AddressEntry is the provider's address object; Memo is set for assets that
// need a destination tag.
type AddressEntry struct {
	Address string `json:"address"`
	Memo    string `json:"memo,omitempty"`
}

// Order is a created swap order. DepositAddress is where the user's funds
// must be sent before ExpiresAt.
type Order struct {
	ID              string
	OrderID         string
	DepositAddress  AddressEntry
	SettleAddress   AddressEntry
	DepositMethodID string
	SettleMethodID  string
	DepositAmount   decimal.Decimal
	SettleAmount    decimal.Decimal
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

type orderPayload struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"orderId"`
	DepositAddress  AddressEntry    `json:"depositAddress"`
	SettleAddress   AddressEntry    `json:"settleAddress"`
	DepositMethodID string          `json:"depositMethodId"`
	SettleMethodID  string          `json:"settleMethodId"`
	DepositAmount   decimal.Decimal `json:"depositAmount"`
	SettleAmount    decimal.Decimal `json:"settleAmount"`
	CreatedAt       json.RawMessage `json:"createdAt"`
	CreatedAtISO    json.RawMessage `json:"createdAtISO"`
	ExpiresAt       json.RawMessage `json:"expiresAt"`
	ExpiresAtISO    json.RawMessage `json:"expiresAtISO"`
}

// CreateOrder turns a fixed quote into an order. Type defaults to "fixed"
// when unset.
func (c *Client) CreateOrder(ctx context.Context, in OrderRequest) (Order, error) {
	if in.Type == "" {
		in.Type = OrderTypeFixed
	}
	var raw orderPayload
	if err := c.do(ctx, http.MethodPost, "orders", in, &raw); err != nil {
		return Order{}, err
	}
	return Order{
		ID:              raw.ID,
		OrderID:         raw.OrderID,
		DepositAddress:  raw.DepositAddress,
		SettleAddress:   raw.SettleAddress,
		DepositMethodID: raw.DepositMethodID,
		SettleMethodID:  raw.SettleMethodID,
		DepositAmount:   raw.DepositAmount,
		SettleAmount:    raw.SettleAmount,
		CreatedAt:       firstTimestamp(raw.CreatedAtISO, raw.CreatedAt),
		ExpiresAt:       firstTimestamp(raw.ExpiresAtISO, raw.ExpiresAt),
	}, nil
}
