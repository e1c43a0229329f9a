// Command browser-check loads the dashboard pages in headless Chrome and
// verifies they rendered: status banners, weight rows, and chart images.
//
// Usage:
//
//	browser-check -base http://localhost:8080
//	browser-check -base http://localhost:8080 -path /history -check '#events li|count>2'
//	browser-check -base http://localhost:8080 -path / -screenshot /tmp/dash.png
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// multiFlag allows repeated -check flags.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var (
		base       string
		path       string
		screenshot string
		waitMs     int
		timeout    time.Duration
		checks     multiFlag
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "Dashboard base URL")
	flag.StringVar(&path, "path", "", "Check a single page instead of every page")
	flag.StringVar(&screenshot, "screenshot", "", "Save a screenshot of the last page to path")
	flag.IntVar(&waitMs, "wait", 500, "Wait ms after load for images to decode")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Overall timeout")
	flag.Var(&checks, "check", "selector|state  (state: visible, hidden, exists, gone, loaded, text=X, count>N)")
	flag.Parse()

	pages, err := selectPages(path, checks)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		flag.Usage()
		os.Exit(2)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	defer ctxCancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, timeout)
	defer timeoutCancel()

	var (
		jsErrors []string
		jsMu     sync.Mutex
	)
	chromedp.ListenTarget(ctx, func(ev any) {
		jsMu.Lock()
		defer jsMu.Unlock()

		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			desc := e.ExceptionDetails.Text
			if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
				desc = e.ExceptionDetails.Exception.Description
			}
			jsErrors = append(jsErrors, desc)
		case *runtime.EventConsoleAPICalled:
			if e.Type == runtime.APITypeError {
				var parts []string
				for _, arg := range e.Args {
					if arg.Value != nil {
						parts = append(parts, string(arg.Value))
					} else if arg.Description != "" {
						parts = append(parts, arg.Description)
					}
				}
				if msg := strings.Join(parts, " "); msg != "" && !strings.Contains(msg, "favicon") {
					jsErrors = append(jsErrors, msg)
				}
			}
		}
	})

	var results []result
	for _, p := range pages {
		url := strings.TrimRight(base, "/") + p.path
		err := chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.WaitVisible("body", chromedp.ByQuery),
			chromedp.Sleep(time.Duration(waitMs)*time.Millisecond),
		)
		if err != nil {
			results = append(results, result{name: "navigate(" + p.path + ")", pass: false, detail: err.Error()})
			continue
		}
		results = append(results, result{name: "navigate(" + p.path + ")", pass: true, detail: "ok"})

		for _, c := range p.checks {
			results = append(results, runCheck(ctx, c))
		}
	}

	jsMu.Lock()
	if len(jsErrors) > 0 {
		results = append(results, result{name: "js-errors", pass: false, detail: strings.Join(jsErrors, "; ")})
	} else {
		results = append(results, result{name: "js-errors", pass: true, detail: "none"})
	}
	jsMu.Unlock()

	if screenshot != "" {
		var buf []byte
		if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: screenshot failed: %v\n", err)
		} else if err := os.WriteFile(screenshot, buf, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: screenshot not saved: %v\n", err)
		} else {
			fmt.Printf("  screenshot: %s\n", screenshot)
		}
	}

	if failed := report(results); failed > 0 {
		os.Exit(1)
	}
}

// selectPages returns the default page set, or a single page with the given
// checks when path is set.
func selectPages(path string, raw []string) ([]page, error) {
	if path == "" {
		if len(raw) > 0 {
			return nil, fmt.Errorf("-check requires -path")
		}
		return defaultPages, nil
	}

	p := page{path: path}
	for _, r := range raw {
		c, err := parseCheck(r)
		if err != nil {
			return nil, err
		}
		p.checks = append(p.checks, c)
	}
	if len(p.checks) == 0 {
		for _, d := range defaultPages {
			if d.path == path {
				p.checks = d.checks
			}
		}
	}
	return []page{p}, nil
}

// report prints results and returns the number of failures.
func report(results []result) int {
	fmt.Println()
	failed := 0
	for _, r := range results {
		icon := "✓"
		if !r.pass {
			icon = "✗"
			failed++
		}
		fmt.Printf("  %s %s: %s\n", icon, r.name, r.detail)
	}
	fmt.Printf("\n  %d/%d passed\n", len(results)-failed, len(results))
	return failed
}
