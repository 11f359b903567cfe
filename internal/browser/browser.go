// Package browser owns the process-wide headless browser session shared by
// all extractors. The underlying Chrome process is started lazily on first
// use, reused across requests, and torn down only by an explicit Shutdown.
package browser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chromedp/chromedp"
)

// Options configure the shared browser process.
type Options struct {
	Headful  bool
	ExecPath string
}

// Manager hands out fresh tab contexts bound to a single shared browser.
// Acquisition is mutex-guarded so concurrent requests race-free share the
// singleton handle; each extraction call still gets its own tab.
type Manager struct {
	opts Options

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewManager creates a manager; no browser is launched until the first Page
// call.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts}
}

// Page returns a context for a fresh tab in the shared browser plus its
// cancel func. The caller must cancel the tab when done; cancelling the tab
// leaves the browser itself running.
func (m *Manager) Page() (context.Context, context.CancelFunc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browserCtx == nil {
		if err := m.startLocked(); err != nil {
			return nil, nil, err
		}
	}
	tabCtx, tabCancel := chromedp.NewContext(m.browserCtx)
	return tabCtx, tabCancel, nil
}

func (m *Manager) startLocked() error {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if m.opts.Headful {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if m.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(m.opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser now so a broken install
	// surfaces here instead of inside the first extraction.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return err
	}

	slog.Info("browser: session started", "headful", m.opts.Headful)
	m.allocCancel = allocCancel
	m.browserCtx = browserCtx
	m.browserCancel = browserCancel
	return nil
}

// Shutdown stops the shared browser. Safe to call multiple times and before
// any Page call.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browserCtx == nil {
		return
	}
	m.browserCancel()
	m.allocCancel()
	m.browserCtx = nil
	m.browserCancel = nil
	m.allocCancel = nil
	slog.Info("browser: session closed")
}
