package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Format selects a capture mode. Which formats a job produces is the
// caller's choice, not the controller's.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Options drives the readiness protocol.
type Options struct {
	PrimarySelector   string
	SecondarySelector string
	PrimaryTimeout    time.Duration
	SecondaryTimeout  time.Duration
	FallbackDelay     time.Duration
	SettleDelay       time.Duration
	PDF               PDFOptions
}

// readiness protocol states
type readinessState int

const (
	awaitingPrimary readinessState = iota
	awaitingSecondary
	fixedDelay
	settling
	ready
)

// Controller drives a render engine session until the report's
// script-populated regions have materialized, then captures the artifact.
// The page gives no completion signal beyond DOM presence, so readiness is
// detected by polling the two dynamic regions with bounded timeouts and a
// fixed-delay last resort.
type Controller struct {
	engine Engine
	opts   Options
	logger hclog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewController(engine Engine, opts Options, logger hclog.Logger) *Controller {
	return &Controller{engine: engine, opts: opts, logger: logger, sleep: sleepCtx}
}

// Capture renders html in a fresh session and captures it in each requested
// format. Readiness timeouts degrade to a capture attempt; engine faults
// return a *RenderError and no artifacts.
func (c *Controller) Capture(ctx context.Context, html string, formats []Format) (map[Format][]byte, error) {
	session, err := c.engine.NewSession(ctx)
	if err != nil {
		return nil, &RenderError{Stage: "session", Err: err}
	}
	defer session.Close()

	if err := session.Load(html); err != nil {
		return nil, &RenderError{Stage: "navigation", Err: err}
	}

	if err := c.awaitReadiness(ctx, session); err != nil {
		return nil, err
	}

	artifacts := make(map[Format][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		switch format {
		case FormatPNG:
			data, err = session.Screenshot()
		case FormatPDF:
			data, err = session.PrintPDF(c.opts.PDF)
		default:
			return nil, &RenderError{Stage: "capture", Err: fmt.Errorf("unknown format %q", format)}
		}
		if err != nil {
			return nil, &RenderError{Stage: "capture", Err: err}
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// awaitReadiness runs the protocol state machine. Each transition is driven
// by a positive poll result or a timer expiry; every path ends in the settle
// delay and a capture.
func (c *Controller) awaitReadiness(ctx context.Context, session Session) error {
	state := awaitingPrimary
	for state != ready {
		switch state {
		case awaitingPrimary:
			err := session.WaitReady(c.opts.PrimarySelector, c.opts.PrimaryTimeout)
			switch {
			case err == nil:
				c.logger.Debug("primary region populated, proceeding with capture")
				state = settling
			case errors.Is(err, ErrReadinessTimeout):
				c.logger.Warn("primary region not detected, trying secondary", "selector", c.opts.PrimarySelector)
				state = awaitingSecondary
			default:
				return &RenderError{Stage: "readiness", Err: err}
			}

		case awaitingSecondary:
			err := session.WaitReady(c.opts.SecondarySelector, c.opts.SecondaryTimeout)
			switch {
			case err == nil:
				c.logger.Debug("secondary region populated, proceeding with capture")
				state = settling
			case errors.Is(err, ErrReadinessTimeout):
				c.logger.Warn("secondary region not detected, using fixed delay", "selector", c.opts.SecondarySelector)
				state = fixedDelay
			default:
				return &RenderError{Stage: "readiness", Err: err}
			}

		case fixedDelay:
			if err := c.sleep(ctx, c.opts.FallbackDelay); err != nil {
				return &RenderError{Stage: "readiness", Err: err}
			}
			state = settling

		case settling:
			// absorbs post-signal layout and paint work
			if err := c.sleep(ctx, c.opts.SettleDelay); err != nil {
				return &RenderError{Stage: "readiness", Err: err}
			}
			state = ready
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
