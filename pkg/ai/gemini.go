package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "r1",
		Subsystem: "ai",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of AI evaluation requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "r1",
		Subsystem: "ai",
		Name:      "evaluation_failures_total",
		Help:      "Number of AI evaluation failures",
	}, []string{"model"})
)

// ErrMissingCredential indicates no Gemini API key was configured. The session
// stays uninitialized so a later call can retry once the key is present.
var ErrMissingCredential = errors.New("gemini api key is not set")

// preferredModels is the fixed preference order: best reasoning first, then
// faster/cheaper fallbacks.
var preferredModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-flash-lite",
}

// GeminiConfig defines configuration options for the Gemini evaluator.
type GeminiConfig struct {
	APIKey      string
	Temperature float32
	TopP        float32
	Logger      zerolog.Logger
}

// GeminiEvaluator implements Evaluator against the Gemini API. The underlying
// client and model selection are built lazily on the first evaluation and
// cached for the process lifetime.
type GeminiEvaluator struct {
	cfg    GeminiConfig
	tracer trace.Tracer
	logger zerolog.Logger

	mu      sync.Mutex
	client  *genai.Client
	modelID string
}

// NewGeminiEvaluator builds a new evaluator. The API key is not validated
// here; a missing key surfaces on the first Evaluate call.
func NewGeminiEvaluator(cfg GeminiConfig) *GeminiEvaluator {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.95
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &GeminiEvaluator{
		cfg:    cfg,
		tracer: otel.Tracer("github.com/roundonehq/r1-interview-api/pkg/ai/gemini"),
		logger: logger.With().Str("component", "gemini_evaluator").Logger(),
	}
}

// ensureSession initializes the client and selects the model identifier on
// first use. Idempotent; a failed attempt leaves the session unset so the
// next call retries. Callers never observe a partially built session.
func (e *GeminiEvaluator) ensureSession(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return nil
	}

	if e.cfg.APIKey == "" {
		return ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	// Listing is advisory: if it fails the availability set stays empty and
	// the first preferred model wins.
	available := e.listAvailableModels(ctx, client)
	modelID := selectModel(available)

	e.logger.Info().Str("model", modelID).Int("available", len(available)).Msg("gemini session initialized")
	e.client = client
	e.modelID = modelID
	return nil
}

// selectModel picks the first preferred model present in the availability
// set. An empty set means listing failed or returned nothing; the first
// preferred model wins in that case.
func selectModel(available map[string]bool) string {
	for _, candidate := range preferredModels {
		if len(available) == 0 || available[candidate] {
			return candidate
		}
	}
	return preferredModels[0]
}

func (e *GeminiEvaluator) listAvailableModels(ctx context.Context, client *genai.Client) map[string]bool {
	available := map[string]bool{}
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			e.logger.Warn().Err(err).Msg("model listing failed, falling back to preference order")
			return nil
		}
		name := model.Name
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		available[name] = true
	}
	return available
}

// ModelID reports the selected model identifier, or "" before initialization.
func (e *GeminiEvaluator) ModelID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modelID
}

// Evaluate sends the scoring prompt to Gemini and coerces the reply into the
// canonical record. There is no retry: any generation failure is fatal for
// the current request.
func (e *GeminiEvaluator) Evaluate(parent context.Context, input EvaluationInput) (EvaluationRecord, error) {
	if err := e.ensureSession(parent); err != nil {
		return EvaluationRecord{}, err
	}

	ctx, span := e.tracer.Start(parent, "gemini.evaluate", trace.WithAttributes(
		attribute.String("model", e.modelID),
	))
	defer span.End()

	contents := []*genai.Content{
		genai.NewContentFromText(buildScoringPrompt(input), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(e.cfg.Temperature),
		TopP:             genai.Ptr(e.cfg.TopP),
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	resp, err := e.client.Models.GenerateContent(ctx, e.modelID, contents, config)
	aiDuration.WithLabelValues(e.modelID).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(e.modelID).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return EvaluationRecord{}, fmt.Errorf("gemini evaluate: %w", err)
	}

	raw, err := ParseModelJSON(resp.Text())
	if err != nil {
		aiFailures.WithLabelValues(e.modelID).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return EvaluationRecord{}, err
	}

	return CoerceRecord(raw), nil
}
