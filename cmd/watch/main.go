package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/example/templhub/internal/poller"
)

// httpChecker polls the storefront's verify endpoint.
type httpChecker struct {
	baseURL string
	token   string
	client  *http.Client
}

func (c *httpChecker) Check(ctx context.Context, memo string) (*poller.Result, error) {
	verifyURL := c.baseURL + "/api/orders/verify?memo=" + url.QueryEscape(memo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, verifyURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, poller.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verify returned status %d", resp.StatusCode)
	}

	var body struct {
		PaymentStatus string `json:"payment_status"`
		TemplateName  string `json:"template_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &poller.Result{
		PaymentStatus: body.PaymentStatus,
		TemplateName:  body.TemplateName,
	}, nil
}

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "storefront base URL")
		token    = flag.String("token", "", "bearer token of the purchasing user")
		memo     = flag.String("memo", "", "payment memo to watch")
		interval = flag.Duration("interval", poller.DefaultInterval, "poll interval")
		timeout  = flag.Duration("timeout", poller.DefaultTimeout, "total polling duration")
	)
	flag.Parse()

	if *memo == "" || *token == "" {
		log.Fatal("-memo and -token are required")
	}

	checker := &httpChecker{
		baseURL: *baseURL,
		token:   *token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}

	p := poller.New(checker, *interval, *timeout, 0)

	outcome, err := p.Wait(context.Background(), *memo)
	if err != nil {
		log.Fatalf("polling aborted: %v", err)
	}

	switch outcome.Status {
	case poller.StatusCompleted:
		fmt.Printf("payment completed: %s\n", outcome.TemplateName)
	case poller.StatusFailed:
		fmt.Println("payment failed")
		os.Exit(1)
	case poller.StatusNotFound:
		fmt.Println("order not found")
		os.Exit(1)
	default:
		fmt.Println("payment still unresolved; it may settle later")
		os.Exit(1)
	}
}
