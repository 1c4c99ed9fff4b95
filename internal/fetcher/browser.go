package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/courtlivestream/boardwatch/internal/board"
	"github.com/courtlivestream/boardwatch/internal/config"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// BrowserFetcher renders display boards in a Chromium instance via Rod. One
// page is kept alive for the whole run, mirroring how an operator leaves a
// single browser window on the board; CAPTCHA-gated sites depend on that
// window staying open (and visible) between cycles.
type BrowserFetcher struct {
	browser  *rod.Browser
	page     *rod.Page
	prepared bool
	cfg      *config.FetcherConfig
	logger   *slog.Logger
}

// NewBrowserFetcher launches Chromium and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	bf := &BrowserFetcher{
		cfg:    &cfg.Fetcher,
		logger: logger.With("component", "browser_fetcher"),
	}

	launchURL, err := bf.launchBrowser()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	bf.browser = browser

	bf.logger.Info("browser fetcher ready",
		"headless", bf.cfg.Headless,
		"stealth", bf.cfg.Stealth,
	)
	return bf, nil
}

// launchBrowser starts Chromium with the usual automation-hiding flags.
func (bf *BrowserFetcher) launchBrowser() (string, error) {
	l := launcher.New().
		Headless(bf.cfg.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	if !bf.cfg.Headless {
		l = l.Set("start-maximized")
	}
	return l.Launch()
}

// Fetch navigates the session page to the site and returns the rendered
// markup once the site's wait conditions pass.
func (bf *BrowserFetcher) Fetch(ctx context.Context, site *board.Site) (*types.Page, error) {
	start := time.Now()

	page, err := bf.sessionPage()
	if err != nil {
		return nil, &types.FetchError{URL: site.URL, Err: err, Retryable: true}
	}
	page = page.Context(ctx)

	if needsPrepare(site, bf.prepared) {
		if err := page.Timeout(bf.cfg.NavigateTimeout).Navigate(site.URL); err != nil {
			return nil, &types.FetchError{URL: site.URL, Err: err, Retryable: true}
		}
		// Interactions wait for their own elements, so they can run before
		// the wait selector; CAPTCHA gates must (the board element only
		// renders once the gate clears).
		for _, in := range site.Setup {
			if err := bf.interact(page, site, in); err != nil {
				return nil, &types.FetchError{URL: site.URL, Err: err, Retryable: true}
			}
		}
		bf.prepared = true
	}

	if site.WaitSelector != "" {
		if _, err := page.Timeout(bf.cfg.ElementTimeout).Element(site.WaitSelector); err != nil {
			return nil, &types.FetchError{
				URL:       site.URL,
				Err:       fmt.Errorf("wait for %q: %w", site.WaitSelector, err),
				Retryable: true,
			}
		}
	}

	if site.PopulateJS != "" {
		if err := bf.waitPopulated(page, site.PopulateJS); err != nil {
			// A board that never populates usually means an upstream outage;
			// snapshot whatever rendered and let extraction decide.
			bf.logger.Warn("table may not be fully populated", "site", site.Key, "error", err)
		}
	}

	if site.SettleDelay > 0 {
		time.Sleep(site.SettleDelay)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: site.URL, Err: err, Retryable: true}
	}

	duration := time.Since(start)
	bf.logger.Debug("browser fetch complete",
		"site", site.Key,
		"size", len(html),
		"duration", duration,
	)
	return types.NewPage(site.URL, []byte(html), duration), nil
}

// needsPrepare reports whether this cycle must navigate and run the site's
// setup interactions. Most boards are re-navigated every cycle; PrepareOnce
// boards prepare only until the first pass succeeds.
func needsPrepare(site *board.Site, prepared bool) bool {
	return !site.PrepareOnce || !prepared
}

// interact performs one page setup step.
func (bf *BrowserFetcher) interact(page *rod.Page, site *board.Site, in board.Interaction) error {
	switch in.Kind {
	case board.InteractSelect:
		el, err := page.Timeout(bf.cfg.ElementTimeout).Element(in.Selector)
		if err != nil {
			return fmt.Errorf("find select %q: %w", in.Selector, err)
		}
		opt := fmt.Sprintf(`option[value=%q]`, in.Value)
		if err := el.Select([]string{opt}, true, rod.SelectorTypeCSSSector); err != nil {
			return fmt.Errorf("select %q on %q: %w", in.Value, in.Selector, err)
		}
		// Give the widget time to redraw with the new option applied.
		time.Sleep(2 * time.Second)
		return nil

	case board.InteractCaptchaWait:
		return bf.waitCaptcha(page, site, in.Selector)

	default:
		return fmt.Errorf("unknown interaction kind %q", in.Kind)
	}
}

// waitCaptcha blocks until the operator clears the CAPTCHA and the board
// element appears, up to the configured limit.
func (bf *BrowserFetcher) waitCaptcha(page *rod.Page, site *board.Site, selector string) error {
	bf.logger.Info("waiting for operator to solve captcha",
		"site", site.Key,
		"timeout", bf.cfg.CaptchaWait,
	)
	deadline := time.Now().Add(bf.cfg.CaptchaWait)
	for time.Now().Before(deadline) {
		has, _, err := page.Has(selector)
		if err == nil && has {
			return nil
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("captcha not solved within %s", bf.cfg.CaptchaWait)
}

// waitPopulated polls the site's populate predicate at a 1s cadence until it
// reports true or the configured limit passes.
func (bf *BrowserFetcher) waitPopulated(page *rod.Page, js string) error {
	deadline := time.Now().Add(bf.cfg.PopulateTimeout)
	for time.Now().Before(deadline) {
		res, err := page.Eval(js)
		if err == nil && res.Value.Bool() {
			return nil
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("%w (waited %s)", types.ErrTableNotReady, bf.cfg.PopulateTimeout)
}

// sessionPage returns the long-lived page, creating it on first use.
func (bf *BrowserFetcher) sessionPage() (*rod.Page, error) {
	if bf.page != nil {
		return bf.page, nil
	}

	var page *rod.Page
	var err error
	if bf.cfg.Stealth {
		page, err = stealth.Page(bf.browser)
	} else {
		page, err = bf.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	if bf.cfg.UserAgent != "" {
		err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: bf.cfg.UserAgent})
		if err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	bf.page = page
	return page, nil
}

// Close shuts down the browser.
func (bf *BrowserFetcher) Close() error {
	if bf.page != nil {
		_ = bf.page.Close()
	}
	if bf.browser != nil {
		return bf.browser.Close()
	}
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}
