// Package mpesa is a client for the Safaricom Daraja API (OAuth, STK push and STK query).
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"smarta-landlord-svc/internal/config"
	"smarta-landlord-svc/pkg/logger"
)

const (
	oauthPath    = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath  = "/mpesa/stkpush/v1/processrequest"
	stkQueryPath = "/mpesa/stkpushquery/v1/query"

	transactionType = "CustomerPayBillOnline"
	timestampLayout = "20060102150405"
)

// eat is the zone Daraja expects request timestamps in
var eat = time.FixedZone("EAT", 3*60*60)

// ErrRejected is returned when Daraja answers with an error payload or a non-zero ResponseCode
var ErrRejected = errors.New("mpesa: request rejected")

// STKPushRequest is the input for a Lipa na M-Pesa Online push
type STKPushRequest struct {
	Amount           decimal.Decimal
	PhoneNumber      string
	AccountReference string
	TransactionDesc  string
}

// STKPushResponse is Daraja's acknowledgement of a push
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`

	Raw json.RawMessage `json:"-"`
}

// STKQueryResponse is Daraja's view of a push
type STKQueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`

	Raw json.RawMessage `json:"-"`
}

// ResultCodeInt parses ResultCode; ok is false while the push is still being processed
func (r *STKQueryResponse) ResultCodeInt() (code int, ok bool) {
	code, err := strconv.Atoi(strings.TrimSpace(r.ResultCode))
	if err != nil {
		return 0, false
	}
	return code, true
}

type errorResponse struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// Client talks to Daraja. It caches the OAuth token until shortly before it expires.
type Client struct {
	cfg        config.MpesaConfig
	httpClient *http.Client
	logger     *logger.Logger
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a Daraja client from configuration
func NewClient(cfg config.MpesaConfig, logger *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// password builds base64(shortcode + passkey + timestamp)
func (c *Client) password(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(c.cfg.ShortCode + c.cfg.PassKey + timestamp))
}

func (c *Client) timestamp() string {
	return c.now().In(eat).Format(timestampLayout)
}

// accessToken returns a cached token or fetches a new one
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+oauthPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	body, status, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: oauth returned %d: %s", ErrRejected, status, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrRejected)
	}

	ttl := 3599
	if n, err := strconv.Atoi(tok.ExpiresIn); err == nil && n > 0 {
		ttl = n
	}
	c.token = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(ttl)*time.Second - time.Minute)

	return c.token, nil
}

// STKPush asks Daraja to prompt the customer's phone for payment
func (c *Client) STKPush(ctx context.Context, in STKPushRequest) (*STKPushResponse, error) {
	amount := in.Amount.Round(0).IntPart()
	if amount <= 0 {
		return nil, fmt.Errorf("mpesa: amount must be at least 1, got %s", in.Amount)
	}

	ts := c.timestamp()
	payload := map[string]interface{}{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          c.password(ts),
		"Timestamp":         ts,
		"TransactionType":   transactionType,
		"Amount":            amount,
		"PartyA":            in.PhoneNumber,
		"PartyB":            c.cfg.ShortCode,
		"PhoneNumber":       in.PhoneNumber,
		"CallBackURL":       c.cfg.CallbackURL,
		"AccountReference":  in.AccountReference,
		"TransactionDesc":   in.TransactionDesc,
	}

	body, err := c.post(ctx, stkPushPath, payload)
	if err != nil {
		return nil, err
	}

	var resp STKPushResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stk push response: %w", err)
	}
	if resp.ResponseCode != "0" {
		return nil, fmt.Errorf("%w: %s %s", ErrRejected, resp.ResponseCode, resp.ResponseDescription)
	}
	resp.Raw = body

	c.logger.WithFields(map[string]interface{}{
		"merchant_request_id": resp.MerchantRequestID,
		"checkout_request_id": resp.CheckoutRequestID,
	}).Info("STK push accepted")

	return &resp, nil
}

// STKQuery asks Daraja for the outcome of a push
func (c *Client) STKQuery(ctx context.Context, checkoutRequestID string) (*STKQueryResponse, error) {
	ts := c.timestamp()
	payload := map[string]interface{}{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          c.password(ts),
		"Timestamp":         ts,
		"CheckoutRequestID": checkoutRequestID,
	}

	body, err := c.post(ctx, stkQueryPath, payload)
	if err != nil {
		return nil, err
	}

	var resp STKQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stk query response: %w", err)
	}
	resp.Raw = body

	return &resp, nil
}

// post sends an authenticated JSON request and returns the body of a 200 response
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	bodyJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.ErrorCode != "" {
			return nil, fmt.Errorf("%w: %s %s", ErrRejected, apiErr.ErrorCode, apiErr.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: %s returned %d", ErrRejected, path, status)
	}

	return body, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"path":        req.URL.Path,
		"status_code": resp.StatusCode,
	}).Debug("Daraja API response")

	return body, resp.StatusCode, nil
}
