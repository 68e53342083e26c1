package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/hashicorp/go-hclog"
)

// ChromeEngine opens headless Chrome sessions via chromedp.
type ChromeEngine struct {
	logger hclog.Logger
}

func NewChromeEngine(logger hclog.Logger) *ChromeEngine {
	return &ChromeEngine{logger: logger}
}

// NewSession launches a fresh browser context. Sessions are never shared
// across jobs; each capture owns its own isolated browser.
func (e *ChromeEngine) NewSession(ctx context.Context) (Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	// start the browser eagerly so launch failures surface here
	if err := chromedp.Run(taskCtx); err != nil {
		taskCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &chromeSession{
		ctx:    taskCtx,
		cancel: func() { taskCancel(); allocCancel() },
		logger: e.logger,
	}, nil
}

type chromeSession struct {
	ctx      context.Context
	cancel   func()
	logger   hclog.Logger
	markupFn string
}

// Load writes the markup to a scratch file and navigates to it. A file URL
// has no in-flight network traffic, so document readiness is the settled
// state; the dynamic regions are handled by WaitReady.
func (s *chromeSession) Load(html string) error {
	scratch, err := os.CreateTemp("", "webevo-report-*.html")
	if err != nil {
		return fmt.Errorf("failed to stage markup: %w", err)
	}
	if _, err := scratch.WriteString(html); err != nil {
		scratch.Close()
		return fmt.Errorf("failed to stage markup: %w", err)
	}
	if err := scratch.Close(); err != nil {
		return fmt.Errorf("failed to stage markup: %w", err)
	}
	s.markupFn = scratch.Name()

	return chromedp.Run(s.ctx,
		chromedp.Navigate("file://"+s.markupFn),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// WaitReady polls for the selector, bounded by timeout. Only the deadline of
// the poll itself maps to ErrReadinessTimeout; a dying session stays fatal.
func (s *chromeSession) WaitReady(selector string, timeout time.Duration) error {
	pollCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	err := chromedp.Run(pollCtx, chromedp.WaitReady(selector, chromedp.ByQuery))
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && s.ctx.Err() == nil {
		return fmt.Errorf("%w: %s", ErrReadinessTimeout, selector)
	}
	return err
}

// Screenshot captures the entire scrollable page.
func (s *chromeSession) Screenshot() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

// PrintPDF captures a paginated document with printable backgrounds and a
// uniform margin, preferring a CSS-specified page size when the template
// declares one.
func (s *chromeSession) PrintPDF(opts PDFOptions) ([]byte, error) {
	var buf []byte
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(opts.PrintBackground).
			WithPreferCSSPageSize(opts.PreferCSSPageSize).
			WithPaperWidth(opts.PaperWidth).
			WithPaperHeight(opts.PaperHeight).
			WithMarginTop(opts.Margin).
			WithMarginBottom(opts.Margin).
			WithMarginLeft(opts.Margin).
			WithMarginRight(opts.Margin).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromeSession) Close() error {
	s.cancel()
	if s.markupFn != "" {
		if err := os.Remove(s.markupFn); err != nil && !os.IsNotExist(err) {
			s.logger.Debug("failed to remove staged markup", "path", s.markupFn, "error", err)
		}
	}
	return nil
}
