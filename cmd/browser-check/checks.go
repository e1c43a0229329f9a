package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chromedp/chromedp"
)

type result struct {
	name   string
	pass   bool
	detail string
}

// pageCheck is one selector|state assertion against a page.
type pageCheck struct {
	sel   string
	state string
}

// parseCheck splits "selector|state".
func parseCheck(s string) (pageCheck, error) {
	sel, state, ok := strings.Cut(s, "|")
	if !ok || sel == "" || state == "" {
		return pageCheck{}, fmt.Errorf("bad check %q, need selector|state", s)
	}
	return pageCheck{sel: sel, state: state}, nil
}

// page is a dashboard page and the assertions it must satisfy once loaded.
type page struct {
	path   string
	checks []pageCheck
}

// defaultPages covers every page the dashboard serves. Chart images must
// have decoded; a 404 or broken PNG leaves naturalWidth at zero.
var defaultPages = []page{
	{path: "/", checks: []pageCheck{
		{`button[type="submit"]`, "visible"},
		{"#form-error", "gone"},
	}},
	{path: "/?profile=balanced", checks: []pageCheck{
		{"#status", "text=success"},
		{"#weights tbody tr", "count>0"},
		{`img[src^="/charts/frontier.png"]`, "loaded"},
		{`img[src^="/charts/allocation.png"]`, "loaded"},
		{`img[src^="/charts/risk.png"]`, "loaded"},
		{"#run-error", "gone"},
	}},
	{path: "/history", checks: []pageCheck{
		{"#status", "text=success"},
		{`img[src^="/charts/price.png"]`, "loaded"},
		{`img[src^="/charts/drawdown.png"]`, "loaded"},
		{"#events li", "count>0"},
	}},
	{path: "/learn", checks: []pageCheck{
		{"a.card", "count=4"},
	}},
	{path: "/learn/var-es", checks: []pageCheck{
		{`img[src="/charts/lesson-var-es.png"]`, "loaded"},
	}},
}

// runCheck evaluates a selector|state assertion.
func runCheck(ctx context.Context, c pageCheck) result {
	name := fmt.Sprintf("check(%s|%s)", c.sel, c.state)
	sel, state := c.sel, c.state

	switch {
	case state == "hidden" || state == "visible":
		var visible bool
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				if (!el) return false;
				return getComputedStyle(el).display !== 'none';
			})()
		`, escJS(sel)), &visible))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: visible == (state == "visible"), detail: fmt.Sprintf("visible=%v", visible)}

	case state == "exists" || state == "gone":
		var exists bool
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`document.querySelector('%s') !== null`, escJS(sel)), &exists))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: exists == (state == "exists"), detail: fmt.Sprintf("exists=%v", exists)}

	case state == "loaded":
		var width int
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				return el && el.complete ? el.naturalWidth : 0;
			})()
		`, escJS(sel)), &width))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: width > 0, detail: fmt.Sprintf("naturalWidth=%d", width)}

	case strings.HasPrefix(state, "text="):
		expected := state[5:]
		var actual string
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				return el ? el.textContent.trim() : '';
			})()
		`, escJS(sel)), &actual))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: strings.Contains(actual, expected), detail: fmt.Sprintf("got: %s", truncate(actual, 60))}

	case strings.HasPrefix(state, "count"):
		var count int
		err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll('%s').length`, escJS(sel)), &count))
		if err != nil {
			return result{name: name, pass: false, detail: err.Error()}
		}
		return result{name: name, pass: evalCountExpr(state, count), detail: fmt.Sprintf("count=%d", count)}

	default:
		return result{name: name, pass: false, detail: fmt.Sprintf("unknown state: %s", state)}
	}
}

// evalCountExpr handles count>N, count>=N, count=N, count<N, count<=N.
func evalCountExpr(expr string, actual int) bool {
	expr = strings.TrimPrefix(expr, "count")
	for _, op := range []string{">=", "<=", ">", "<", "="} {
		rest, ok := strings.CutPrefix(expr, op)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false
		}
		switch op {
		case ">=":
			return actual >= n
		case "<=":
			return actual <= n
		case ">":
			return actual > n
		case "<":
			return actual < n
		default:
			return actual == n
		}
	}
	return false
}

func escJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
