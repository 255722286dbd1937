package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/trip"
)

// Result is the tagged outcome of one generation attempt: either Ok with the
// itinerary text or Failed with a human-readable reason.
type Result struct {
	ok     bool
	text   string
	reason string

	// Model is the model that produced the text (Ok only).
	Model string

	// GeneratedAt is when the text was produced (Ok only).
	GeneratedAt time.Time
}

// Ok builds a successful Result.
func Ok(text string) Result {
	return Result{ok: true, text: text}
}

// Failed builds a failed Result.
func Failed(reason string) Result {
	return Result{reason: reason}
}

// OK reports whether the result holds generated text.
func (r Result) OK() bool { return r.ok }

// Text returns the itinerary text, or "" for a failed result.
func (r Result) Text() string { return r.text }

// Reason returns why generation failed, or "" for a successful result.
func (r Result) Reason() string { return r.reason }

// Client generates itineraries through an LLM. It never returns an error:
// every failure of the provider is reported as a Failed result.
type Client struct {
	llm    LLM
	config LLMConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewClient creates a generation client over llm. A non-positive
// config.Timeout is replaced with the default.
func NewClient(llm LLM, config LLMConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultLLMConfig().Timeout
	}
	return &Client{
		llm:    llm,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Generate invokes the LLM once for req. No retry is attempted.
func (c *Client) Generate(ctx context.Context, req trip.Request) (result Result) {
	if c.llm == nil {
		return Failed("no generation service configured")
	}

	log := c.logger.With(
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
		zap.String("model", c.config.Model),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("generation provider panicked", zap.Any("panic", r))
			result = Failed(fmt.Sprintf("generation service failed unexpectedly: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	msgs := Messages{
		System: SystemPrompt,
		User:   BuildPrompt(req),
	}

	log.Info("generating itinerary", zap.Int("prompt_chars", len(msgs.User)))
	start := c.now()

	text, err := c.llm.Generate(ctx, msgs)
	if err != nil {
		reason := c.describeFailure(err)
		log.Warn("itinerary generation failed", zap.String("reason", reason), zap.Error(err))
		return Failed(reason)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn("itinerary generation returned empty text")
		return Failed("the generation service returned an empty itinerary")
	}

	res := Ok(text)
	res.Model = c.config.Model
	res.GeneratedAt = c.now()
	log.Info("itinerary generated",
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", res.GeneratedAt.Sub(start)))
	return res
}

func (c *Client) describeFailure(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Unable to generate itinerary: the generation service did not answer within %s", c.config.Timeout)
	case errors.Is(err, context.Canceled):
		return "Unable to generate itinerary: the request was cancelled"
	case errors.Is(err, ErrUnauthorized):
		return "Unable to generate itinerary: authentication with the generation service failed (check the API key)"
	case errors.Is(err, ErrRateLimited):
		return "Unable to generate itinerary: the generation service is rate limiting requests, try again shortly"
	case errors.Is(err, ErrEmptyResponse):
		return "Unable to generate itinerary: the generation service returned no completion"
	default:
		return fmt.Sprintf("Unable to generate itinerary. Error: %v", err)
	}
}
