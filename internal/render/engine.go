package render

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrReadinessTimeout reports that a readiness selector did not appear before
// its timeout. It is an expected degradation, never a job failure.
var ErrReadinessTimeout = errors.New("readiness selector did not appear before timeout")

// RenderError is an engine-level fault (session, navigation or capture).
// It is fatal to the job; no artifact is produced and there is no retry.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render engine fault during %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PDFOptions describes the paginated capture. Dimensions are inches; the
// margin applies uniformly to all four sides.
type PDFOptions struct {
	PaperWidth        float64
	PaperHeight       float64
	Margin            float64
	PrintBackground   bool
	PreferCSSPageSize bool
}

// Session is one isolated render engine session. A session belongs to exactly
// one job and is bound to the context it was created with.
type Session interface {
	// Load renders the markup and blocks until the document has settled.
	Load(html string) error
	// WaitReady polls for at least one element matching selector, bounded by
	// timeout. Expiry is reported as ErrReadinessTimeout.
	WaitReady(selector string, timeout time.Duration) error
	// Screenshot captures the entire scrollable content, not just the viewport.
	Screenshot() ([]byte, error)
	// PrintPDF captures a paginated document.
	PrintPDF(opts PDFOptions) ([]byte, error)
	Close() error
}

// Engine opens render sessions.
type Engine interface {
	NewSession(ctx context.Context) (Session, error)
}
