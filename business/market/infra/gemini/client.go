// Package gemini implements the market data provider backed by the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/p2ppro/p2p-calc/internal/apperror"
	"github.com/p2ppro/p2p-calc/internal/circuitbreaker"
	"github.com/p2ppro/p2p-calc/internal/httpclient"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/ratelimit"
)

const (
	tracerName = "github.com/p2ppro/p2p-calc/business/market/infra/gemini"

	// DefaultBaseURL is the public Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	defaultModel      = "gemini-2.5-flash"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
	defaultRetryDelay = time.Second
)

// ClientConfig holds configuration for the Gemini API client.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration
	RatePerSecond float64
	RateBurst     int
}

// Client is a thin Gemini generateContent client with rate limiting, a
// circuit breaker, and bounded retries.
type Client struct {
	http    httpclient.Client
	config  ClientConfig
	logger  logger.LoggerInterface
	tracer  trace.Tracer
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.Breaker[*generateResponse]
}

// NewClient creates a new Gemini API client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.RatePerSecond == 0 {
		cfg.RatePerSecond = 1
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 2
	}

	tracer := otel.Tracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("gemini"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(cfg.Timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceResponse),
		httpclient.WithHeaders(map[string]string{
			"Accept": "application/json",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("gemini")
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		http:    client,
		config:  cfg,
		logger:  log,
		tracer:  tracer,
		limiter: ratelimit.NewWithBurst(cfg.RatePerSecond, cfg.RateBurst),
		breaker: circuitbreaker.New[*generateResponse](breakerCfg),
	}, nil
}

// generate sends one structured-output prompt and returns the response text.
// Retries cover transient failures; an open breaker or a cancelled context
// fails fast.
func (c *Client) generate(ctx context.Context, kind, prompt string, responseSchema *schema) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.generate",
		trace.WithAttributes(
			attribute.String("model", c.config.Model),
			attribute.String("kind", kind),
		),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	endpoint := fmt.Sprintf("/v1beta/models/%s:generateContent", c.config.Model)

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug(ctx, "retrying gemini request",
				"kind", kind, "attempt", attempt)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}

		result, err := c.breaker.Execute(func() (*generateResponse, error) {
			return c.post(ctx, endpoint, req)
		})
		if err == nil {
			text := result.text()
			if text == "" {
				lastErr = apperror.New(apperror.CodeProviderBadResponse,
					apperror.WithContext("empty candidate text"))
				continue
			}
			span.SetAttributes(attribute.Int("attempts", attempt+1))
			return text, nil
		}

		if circuitbreaker.IsOpen(err) {
			span.RecordError(err)
			return "", apperror.New(apperror.CodeCircuitOpen,
				apperror.WithCause(err),
				apperror.WithContext("gemini"))
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
	}

	span.RecordError(lastErr)
	return "", apperror.Wrap(lastErr, apperror.CodeProviderRequestFailed, kind)
}

func (c *Client) post(ctx context.Context, endpoint string, req generateRequest) (*generateResponse, error) {
	var result generateResponse
	resp, err := c.http.NewRequestWithOptions(
		httpclient.WithLabels(
			httpclient.NewLabel("endpoint", "generateContent"),
			httpclient.NewLabel("model", c.config.Model),
		),
		httpclient.WithResponseErrorHandler(geminiErrorHandler),
	).
		SetHeader("x-goog-api-key", c.config.APIKey).
		SetBody(req).
		SetResult(&result).
		Post(ctx, endpoint)

	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, apperror.New(apperror.CodeProviderRateLimited,
				apperror.WithCause(apiErr))
		}
		return nil, err
	}

	if resp.IsError() {
		return nil, apperror.New(apperror.CodeProviderRequestFailed,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.String())))
	}

	return &result, nil
}
