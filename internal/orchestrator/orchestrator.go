// Package orchestrator drives one session through the generation cycle:
// validate the trip, invalidate the cache, generate, cache on success, and
// render the cached itinerary on demand.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/itinerary"
	"github.com/Yates-Labs/roam/internal/render"
	"github.com/Yates-Labs/roam/internal/session"
	"github.com/Yates-Labs/roam/internal/trip"
)

// ErrGenerationFailed wraps the reason reported by a Failed generation.
var ErrGenerationFailed = errors.New("itinerary generation failed")

// Generator produces an itinerary for a validated request.
type Generator interface {
	Generate(ctx context.Context, req trip.Request) itinerary.Result
}

// Renderer turns itinerary text into a document.
type Renderer interface {
	Render(in render.Input) (*render.Document, error)
}

// Outcome is what a submission left behind in the session.
type Outcome struct {
	Phase   session.Phase
	Request trip.Request
	Text    string
	Reason  string

	// Entry is the itinerary cached by this submission (PhaseCached only).
	Entry session.Entry
}

// Orchestrator wires validation, generation, caching and rendering together.
// It keeps no per-user state of its own; everything lives in the Session.
type Orchestrator struct {
	generator Generator
	renderer  Renderer
	logger    *zap.Logger
}

// New creates an orchestrator.
func New(generator Generator, renderer Renderer, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		generator: generator,
		renderer:  renderer,
		logger:    logger,
	}
}

// Submit validates in and, when it is valid, replaces the session's itinerary
// with a freshly generated one.
//
// Invalid input is rejected before anything else happens: the phase and the
// cache keep whatever they held. A valid submission always clears the cache
// first, so a failed generation never leaves an older itinerary behind.
func (o *Orchestrator) Submit(ctx context.Context, sess *session.Session, in trip.Input) (*Outcome, error) {
	sess.Lock()
	defer sess.Unlock()

	log := o.logger.With(zap.String("session", sess.ID))

	req, err := trip.New(in)
	if err != nil {
		log.Debug("rejected trip request", zap.Error(err))
		return nil, err
	}

	o.transition(log, sess, session.PhaseValidating)
	sess.SetLastFailure("")

	o.transition(log, sess, session.PhaseGenerating)
	sess.Cache().Invalidate()

	result := o.generator.Generate(ctx, req)
	if !result.OK() {
		sess.SetLastFailure(result.Reason())
		o.transition(log, sess, session.PhaseFailed)
		log.Warn("itinerary generation failed",
			zap.String("destination", req.Destination),
			zap.String("reason", result.Reason()))
		return &Outcome{
			Phase:   session.PhaseFailed,
			Request: req,
			Reason:  result.Reason(),
		}, fmt.Errorf("%w: %s", ErrGenerationFailed, result.Reason())
	}

	if err := sess.Cache().Set(result, req); err != nil {
		return nil, fmt.Errorf("failed to cache itinerary: %w", err)
	}
	o.transition(log, sess, session.PhaseCached)
	log.Info("itinerary cached",
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
		zap.String("language", req.Language.Name))

	return &Outcome{
		Phase:   session.PhaseCached,
		Request: req,
		Text:    result.Text(),
		Entry:   session.Entry{Result: result, Request: req},
	}, nil
}

// Current returns the cached itinerary of sess.
func (o *Orchestrator) Current(sess *session.Session) (session.Entry, bool) {
	sess.Lock()
	defer sess.Unlock()
	return sess.Cache().Get()
}

// Status returns the phase of sess and the reason of its last failure.
func (o *Orchestrator) Status(sess *session.Session) (session.Phase, string) {
	sess.Lock()
	defer sess.Unlock()
	return sess.Phase(), sess.LastFailure()
}

// Document renders the cached itinerary of sess. It fails with
// render.ErrCacheEmpty when nothing has been generated, and never touches the
// cache, so it can be called any number of times.
func (o *Orchestrator) Document(sess *session.Session) (*render.Document, error) {
	sess.Lock()
	defer sess.Unlock()

	entry, ok := sess.Cache().Get()
	if !ok {
		return nil, render.ErrCacheEmpty
	}

	doc, err := o.renderer.Render(RenderInput(entry))
	if err != nil {
		return nil, err
	}
	for _, w := range doc.Warnings {
		o.logger.Warn("document degraded", zap.String("session", sess.ID), zap.String("warning", w))
	}
	return doc, nil
}

// RenderInput builds the renderer's input from a cached entry.
func RenderInput(entry session.Entry) render.Input {
	req := entry.Request
	return render.Input{
		Text:        entry.Result.Text(),
		Destination: req.Destination,
		Days:        req.Days,
		Month:       req.Month.String(),
		Language:    req.Language,
		CreatedAt:   entry.Result.GeneratedAt,
	}
}

func (o *Orchestrator) transition(log *zap.Logger, sess *session.Session, to session.Phase) {
	log.Debug("phase transition",
		zap.Stringer("from", sess.Phase()),
		zap.Stringer("to", to))
	sess.SetPhase(to)
}
