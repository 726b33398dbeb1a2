package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/templhub/internal/config"
)

var hotpayHTTPClient = &http.Client{Timeout: 15 * time.Second}

// ErrHotpayNotConfigured is returned by LookupPayment when no API token is
// set. Callers degrade to the stored payment status.
var ErrHotpayNotConfigured = errors.New("hotpay api token not configured")

// PaymentRecord is a processed payment as reported by the HOT Pay API.
type PaymentRecord struct {
	Memo    string `json:"memo"`
	Status  string `json:"status"`
	NearTrx string `json:"near_trx"`
}

// Gateway is the payment gateway surface the checkout and reconciliation
// services depend on.
type Gateway interface {
	PaymentURL(itemID string, amount float64, memo string) string
	LookupPayment(ctx context.Context, memo string) (*PaymentRecord, error)
}

// HotpayClient talks to the HOT Pay gateway: it builds checkout redirect
// URLs and queries the processed-payments lookup API.
type HotpayClient struct {
	baseURL       string
	apiURL        string
	appURL        string
	defaultItemID string
	apiToken      string
	http          *http.Client
}

// NewHotpayClient constructs a HotpayClient from configuration.
func NewHotpayClient(cfg *config.Config) *HotpayClient {
	return &HotpayClient{
		baseURL:       cfg.HotpayBaseURL,
		apiURL:        cfg.HotpayAPIURL,
		appURL:        cfg.AppURL,
		defaultItemID: cfg.HotpayItemID,
		apiToken:      cfg.HotpayAPIToken,
		http:          hotpayHTTPClient,
	}
}

// PaymentURL builds the gateway checkout URL for one purchase attempt. The
// memo rides along in both the webhook callback and the user-facing redirect
// so the gateway can round-trip it on either path.
func (c *HotpayClient) PaymentURL(itemID string, amount float64, memo string) string {
	if itemID == "" {
		itemID = c.defaultItemID
	}

	params := url.Values{}
	params.Set("item_id", itemID)
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	params.Set("memo", memo)
	params.Set("webhook_url", c.appURL+"/api/hotpay/webhook")
	params.Set("redirect_url", c.appURL+"/payment/status?memo="+memo)

	return c.baseURL + "/payment?" + params.Encode()
}

type lookupResponse struct {
	Payments []PaymentRecord `json:"payments"`
}

// LookupPayment returns the most recent processed payment matching the memo,
// or nil when the gateway has no record of it yet.
func (c *HotpayClient) LookupPayment(ctx context.Context, memo string) (*PaymentRecord, error) {
	if c.apiToken == "" {
		return nil, ErrHotpayNotConfigured
	}

	lookupURL := fmt.Sprintf("%s/partners/processed_payments?memo=%s&limit=1", c.apiURL, url.QueryEscape(memo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hotpay lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Payments) == 0 {
		return nil, nil
	}

	return &parsed.Payments[0], nil
}
