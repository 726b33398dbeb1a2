package poller

import (
	"context"
	"errors"
	"time"

	"github.com/example/templhub/internal/models"
)

// Status of a finished wait.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusNotFound   Status = "not_found"
	StatusUnresolved Status = "unresolved"
)

// Defaults match the storefront's payment status page: check every three
// seconds, give up after five minutes, and tolerate a handful of misses
// before declaring the order missing.
const (
	DefaultInterval  = 3 * time.Second
	DefaultTimeout   = 5 * time.Minute
	DefaultMissLimit = 10
)

// ErrNotFound is returned by a Checker when the server does not know the
// memo (yet). Freshly created orders can be briefly invisible, so a miss is
// tolerated for a bounded number of consecutive checks.
var ErrNotFound = errors.New("order not found")

// Result is a single status check response.
type Result struct {
	PaymentStatus string
	TemplateName  string
}

// Checker performs one status lookup for a memo.
type Checker interface {
	Check(ctx context.Context, memo string) (*Result, error)
}

// Outcome is the final presentation of a wait. An unresolved outcome means
// polling gave up; the order itself is untouched and may still settle.
type Outcome struct {
	Status       Status
	TemplateName string
}

// Poller repeatedly checks an order's payment status until it reaches a
// terminal state, goes definitively missing, or the deadline passes.
type Poller struct {
	checker   Checker
	interval  time.Duration
	timeout   time.Duration
	missLimit int
}

// New constructs a Poller. Zero values fall back to the defaults.
func New(checker Checker, interval, timeout time.Duration, missLimit int) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if missLimit <= 0 {
		missLimit = DefaultMissLimit
	}
	return &Poller{
		checker:   checker,
		interval:  interval,
		timeout:   timeout,
		missLimit: missLimit,
	}
}

// Wait polls until the order settles. Terminal results stop polling
// immediately and never flip afterwards. Transient check errors keep the
// loop going; only a run of consecutive not-found responses surfaces as
// StatusNotFound. Cancelling ctx stops the loop cooperatively.
func (p *Poller) Wait(ctx context.Context, memo string) (Outcome, error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	misses := 0
	var templateName string

	for {
		result, err := p.checker.Check(waitCtx, memo)
		switch {
		case errors.Is(err, ErrNotFound):
			misses++
			if misses >= p.missLimit {
				return Outcome{Status: StatusNotFound}, nil
			}
		case err != nil:
			// Transient failure: neither a miss nor a result.
		default:
			misses = 0
			if result.TemplateName != "" {
				templateName = result.TemplateName
			}
			switch result.PaymentStatus {
			case models.PaymentCompleted:
				return Outcome{Status: StatusCompleted, TemplateName: templateName}, nil
			case models.PaymentFailed:
				return Outcome{Status: StatusFailed, TemplateName: templateName}, nil
			}
		}

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return Outcome{Status: StatusUnresolved, TemplateName: templateName}, err
			}
			return Outcome{Status: StatusUnresolved, TemplateName: templateName}, nil
		}
	}
}
