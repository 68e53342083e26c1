package render

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primarySelector   = "#opportunities-list > div"
	secondarySelector = "#warnings-list > div"
)

type fakeSession struct {
	events *[]string

	readySelectors map[string]bool
	loadErr        error
	waitErr        error
	captureErr     error
}

func (s *fakeSession) Load(html string) error {
	*s.events = append(*s.events, "load")
	return s.loadErr
}

func (s *fakeSession) WaitReady(selector string, timeout time.Duration) error {
	*s.events = append(*s.events, "wait:"+selector)
	if s.waitErr != nil {
		return s.waitErr
	}
	if s.readySelectors[selector] {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrReadinessTimeout, selector)
}

func (s *fakeSession) Screenshot() ([]byte, error) {
	*s.events = append(*s.events, "capture:png")
	return []byte("png-bytes"), s.captureErr
}

func (s *fakeSession) PrintPDF(opts PDFOptions) ([]byte, error) {
	*s.events = append(*s.events, "capture:pdf")
	return []byte("pdf-bytes"), s.captureErr
}

func (s *fakeSession) Close() error {
	*s.events = append(*s.events, "close")
	return nil
}

type fakeEngine struct {
	session Session
	err     error
}

func (e *fakeEngine) NewSession(ctx context.Context) (Session, error) {
	return e.session, e.err
}

func testOptions() Options {
	return Options{
		PrimarySelector:   primarySelector,
		SecondarySelector: secondarySelector,
		PrimaryTimeout:    15 * time.Millisecond,
		SecondaryTimeout:  10 * time.Millisecond,
		FallbackDelay:     5 * time.Millisecond,
		SettleDelay:       2 * time.Millisecond,
	}
}

// newTestController records controller-driven delays alongside session calls.
func newTestController(session Session, events *[]string) *Controller {
	controller := NewController(&fakeEngine{session: session}, testOptions(), hclog.NewNullLogger())
	controller.sleep = func(ctx context.Context, d time.Duration) error {
		*events = append(*events, "sleep:"+d.String())
		return nil
	}
	return controller
}

func TestCapturePrimaryRegionReady(t *testing.T) {
	var events []string
	session := &fakeSession{events: &events, readySelectors: map[string]bool{primarySelector: true}}
	controller := newTestController(session, &events)

	artifacts, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), artifacts[FormatPNG])

	assert.Equal(t, []string{
		"load",
		"wait:" + primarySelector,
		"sleep:2ms",
		"capture:png",
		"close",
	}, events)
}

func TestCaptureFallsBackToSecondaryRegion(t *testing.T) {
	var events []string
	session := &fakeSession{events: &events, readySelectors: map[string]bool{secondarySelector: true}}
	controller := newTestController(session, &events)

	_, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"load",
		"wait:" + primarySelector,
		"wait:" + secondarySelector,
		"sleep:2ms",
		"capture:png",
		"close",
	}, events)
}

func TestCaptureProceedsAfterBothRegionsTimeOut(t *testing.T) {
	var events []string
	session := &fakeSession{events: &events, readySelectors: map[string]bool{}}
	controller := newTestController(session, &events)

	artifacts, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
	require.NoError(t, err, "readiness timeout must never fail the job")
	assert.NotEmpty(t, artifacts[FormatPNG])

	// the secondary region is polled before any fixed delay is applied
	assert.Equal(t, []string{
		"load",
		"wait:" + primarySelector,
		"wait:" + secondarySelector,
		"sleep:5ms",
		"sleep:2ms",
		"capture:png",
		"close",
	}, events)
}

func TestCaptureBothFormats(t *testing.T) {
	var events []string
	session := &fakeSession{events: &events, readySelectors: map[string]bool{primarySelector: true}}
	controller := newTestController(session, &events)

	artifacts, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG, FormatPDF})
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), artifacts[FormatPNG])
	assert.Equal(t, []byte("pdf-bytes"), artifacts[FormatPDF])
}

func TestCaptureEngineFaultsAreFatal(t *testing.T) {
	t.Run("session creation", func(t *testing.T) {
		controller := NewController(&fakeEngine{err: errors.New("no browser")}, testOptions(), hclog.NewNullLogger())

		_, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "session", renderErr.Stage)
	})

	t.Run("navigation", func(t *testing.T) {
		var events []string
		session := &fakeSession{events: &events, loadErr: errors.New("navigation lost")}
		controller := newTestController(session, &events)

		_, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "navigation", renderErr.Stage)
		assert.NotContains(t, events, "capture:png")
	})

	t.Run("readiness poll fault", func(t *testing.T) {
		var events []string
		session := &fakeSession{events: &events, waitErr: errors.New("session died")}
		controller := newTestController(session, &events)

		_, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "readiness", renderErr.Stage)
	})

	t.Run("capture", func(t *testing.T) {
		var events []string
		session := &fakeSession{
			events:         &events,
			readySelectors: map[string]bool{primarySelector: true},
			captureErr:     errors.New("capture failed"),
		}
		controller := newTestController(session, &events)

		artifacts, err := controller.Capture(context.Background(), "<html/>", []Format{FormatPNG})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "capture", renderErr.Stage)
		assert.Nil(t, artifacts)
	})
}
