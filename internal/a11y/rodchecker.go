package a11y

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// RodConfig configures the browser used for checks.
type RodConfig struct {
	// ControlURL attaches to a running browser instead of launching one.
	ControlURL        string
	BrowserBin        string
	Headless          bool
	NavigationTimeout time.Duration
	// AxeScript is the path of axe.min.js, injected into every page.
	AxeScript string
}

// RodChecker drives a Chromium browser through the DevTools protocol.
type RodChecker struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	axe      string
	timeout  time.Duration
	log      *zap.Logger
}

const axeRun = `(opts) => axe.run(document, opts).then(r => r.violations)`

// NewRodChecker launches (or attaches to) a browser and loads the axe
// script.
func NewRodChecker(ctx context.Context, cfg RodConfig, log *zap.Logger) (*RodChecker, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.AxeScript == "" {
		return nil, errors.New("a11y: axe script path required")
	}
	axe, err := os.ReadFile(cfg.AxeScript)
	if err != nil {
		return nil, fmt.Errorf("read axe script: %w", err)
	}
	timeout := cfg.NavigationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &RodChecker{axe: string(axe), timeout: timeout, log: log}
	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless)
		if cfg.BrowserBin != "" {
			l = l.Bin(cfg.BrowserBin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		c.launcher = l
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		c.cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	c.browser = browser
	log.Debug("browser connected", zap.String("control_url", controlURL))
	return c, nil
}

// Check opens url, waits for a visible body, injects axe and returns its
// violations.
func (c *RodChecker) Check(ctx context.Context, url string, opts Options) (Result, error) {
	page, err := c.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return Result{}, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	p := page.Timeout(c.timeout)
	if err := p.Navigate(url); err != nil {
		return Result{}, fmt.Errorf("navigate %s: %w", url, err)
	}
	body, err := p.Element("body")
	if err != nil {
		return Result{}, fmt.Errorf("find body: %w", err)
	}
	if err := body.WaitVisible(); err != nil {
		return Result{}, fmt.Errorf("wait for body: %w", err)
	}
	if err := p.AddScriptTag("", c.axe); err != nil {
		return Result{}, fmt.Errorf("inject axe: %w", err)
	}
	res, err := p.Evaluate(rod.Eval(axeRun, axeOptions(opts)).ByPromise())
	if err != nil {
		return Result{}, fmt.Errorf("run axe: %w", err)
	}
	var violations []Violation
	if err := res.Value.Unmarshal(&violations); err != nil {
		return Result{}, fmt.Errorf("decode axe result: %w", err)
	}
	return Result{Violations: violations}, nil
}

// Close disconnects the browser and stops it when it was launched here.
func (c *RodChecker) Close() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
	}
	c.cleanup()
	return err
}

func (c *RodChecker) cleanup() {
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher.Cleanup()
	}
}

type axeRunOnly struct {
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

type axeRunOptions struct {
	RunOnly axeRunOnly `json:"runOnly"`
}

func axeOptions(opts Options) axeRunOptions {
	values := opts.Rules
	if len(values) == 0 {
		values = []string{RulesetWCAG2A}
	}
	return axeRunOptions{RunOnly: axeRunOnly{Type: "tag", Values: values}}
}
