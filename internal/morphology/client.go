package morphology

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"narrative-assembly/internal/logger"
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RPM caps outgoing requests per minute.
	RPM int
	// OnStateChange is called after the breaker has logged a transition.
	OnStateChange func(from, to gobreaker.State)
	HTTPClient    *http.Client
}

var _ Analyzer = (*Client)(nil)

// Client calls the morphology service over HTTP behind a rate limiter and a circuit breaker.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.RPM <= 0 {
		opts.RPM = 600
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MorphologyService",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			if opts.OnStateChange != nil {
				opts.OnStateChange(from, to)
			}
		},
	})

	burst := max(opts.RPM/10, 1)

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  httpClient,
		breaker:     breaker,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(opts.RPM)/60.0), burst),
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// Inflect returns the noun and verb forms of phrase.
func (c *Client) Inflect(ctx context.Context, phrase string) (Forms, error) {
	var forms Forms
	err := c.call(ctx, "morphology.inflect", "/inflect", phrase, &forms)
	return forms, err
}

// Entities extracts people, organisations, places and nouns from text.
func (c *Client) Entities(ctx context.Context, text string) (Entities, error) {
	var ents Entities
	err := c.call(ctx, "morphology.entities", "/entities", text, &ents)
	return ents, err
}

func (c *Client) call(ctx context.Context, spanName, path, text string, out any) error {
	tracer := otel.Tracer("morphology-client")
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		attribute.String("morphology.path", path),
		attribute.Int("morphology.text_length", len(text)),
	)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("morphology.rate_limited", true))
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, path, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("morphology.circuit_breaker_open", true))
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, text string) ([]byte, error) {
	payload, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("morphology request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("morphology service returned status %d", resp.StatusCode)
	}
	return data, nil
}
