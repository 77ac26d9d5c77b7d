// Package geocode resolves US ZIP codes through the Zippopotam.us API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/miketud/realestateapp/internal/adapter/metrics"
	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/platform/retry"
)

const maxResponseBytes = 64 << 10

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSecond caps outgoing requests; bursts of up to twice the rate are allowed.
	RatePerSecond float64
	Clock         clockwork.Clock
	HTTPClient    *http.Client
}

// Client is a domain.ZipLookup backed by Zippopotam.us.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	policy  retry.Policy
	metrics *metrics.GeocoderMetrics
}

var _ domain.ZipLookup = (*Client)(nil)

// statusError is a non-2xx answer other than 404.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("geocoder returned status %d", e.status)
}

// New builds a client. m may be nil.
func New(cfg Config, m *metrics.GeocoderMetrics) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	burst := int(cfg.RatePerSecond * 2)
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst),
		policy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   200 * time.Millisecond,
			MaxBackoff:       2 * time.Second,
			RateLimitBackoff: time.Second,
			Clock:            cfg.Clock,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Retrying zip lookup", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
		metrics: m,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrZipNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
			if m != nil {
				m.BreakerChanges.WithLabelValues(to.String()).Inc()
				m.BreakerState.Set(stateToFloat(to))
			}
		},
	})

	return c
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Lookup resolves a 5-digit ZIP; ZIP+4 input is looked up by its prefix.
func (c *Client) Lookup(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	zip = strings.TrimSpace(zip)
	if len(zip) > 5 {
		zip = zip[:5]
	}

	start := time.Now()
	loc, err := c.lookup(ctx, zip)
	if c.metrics != nil {
		c.metrics.RequestDuration.Observe(time.Since(start).Seconds())
		c.metrics.Requests.WithLabelValues(outcome(err)).Inc()
	}
	return loc, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, domain.ErrZipNotFound):
		return "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	default:
		return "error"
	}
}

func (c *Client) lookup(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", domain.ErrGeocoderUnavailable, err)
	}

	v, err := c.breaker.Execute(func() (any, error) {
		return retry.Do(ctx, c.policy, classify, func(ctx context.Context) (*domain.ZipLocation, error) {
			return c.fetch(ctx, zip)
		})
	})
	if errors.Is(err, domain.ErrZipNotFound) {
		return nil, domain.ErrZipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeocoderUnavailable, err)
	}
	return v.(*domain.ZipLocation), nil
}

func classify(err error) retry.Action {
	var se *statusError
	switch {
	case errors.Is(err, domain.ErrZipNotFound):
		return retry.Stop
	case errors.As(err, &se):
		return retry.StatusAction(se.status)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retry.Stop
	default:
		// transport and decode failures
		return retry.Retry
	}
}

type response struct {
	PostCode string `json:"post code"`
	Places   []struct {
		PlaceName         string `json:"place name"`
		State             string `json:"state"`
		StateAbbreviation string `json:"state abbreviation"`
	} `json:"places"`
}

func (c *Client) fetch(ctx context.Context, zip string) (*domain.ZipLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/us/"+zip, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrZipNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &statusError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(r.Places) == 0 {
		return nil, domain.ErrZipNotFound
	}

	place := r.Places[0]
	return &domain.ZipLocation{
		Zip:   zip,
		City:  place.PlaceName,
		State: strings.ToUpper(place.StateAbbreviation),
	}, nil
}
