package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/metrics"
)

// ErrUnavailable means the remote generator cannot be reached at all, as
// opposed to a single failed call.
var ErrUnavailable = errors.New("text generator unavailable")

// Generator is a black-box text completion service.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type GenerateOptions struct {
	// Operation labels the call in logs and metrics.
	Operation string
	// JSON asks the model for an application/json response.
	JSON bool
}

// GeminiGenerator calls the Gemini API through a circuit breaker.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	cb     *gobreaker.CircuitBreaker[string]
}

// NewGeminiGenerator builds a generator for the given API key and model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  model,
		cb:     newBreaker("gemini-api"),
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	start := time.Now()
	text, err := g.cb.Execute(func() (string, error) {
		var cfg *genai.GenerateContentConfig
		if opts.JSON {
			cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
		}
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			return "", err
		}
		out := resp.Text()
		if out == "" {
			return "", errors.New("empty response from model")
		}
		return out, nil
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.GeminiRequestDuration.WithLabelValues(opts.Operation, status).Observe(time.Since(start).Seconds())

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", opts.Operation, err)
	}
	return text, nil
}

func newBreaker(name string) *gobreaker.CircuitBreaker[string] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		// Open after 5 consecutive failures.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
