package illustrations

import "fmt"

// Lesson slugs.
const (
	SlugVolatility = "volatility"
	SlugDrawdown   = "drawdown"
	SlugVaRES      = "var-es"
	SlugMarkowitz  = "markowitz"
)

// Lesson binds a learn page to its chart data.
type Lesson struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Caption string `json:"caption"`
	Data    any    `json:"data"`
}

type lessonEntry struct {
	title    string
	summary  string
	caption  string
	generate func() any
}

var lessonOrder = []string{SlugVolatility, SlugDrawdown, SlugVaRES, SlugMarkowitz}

var lessons = map[string]lessonEntry{
	SlugVolatility: {
		title:    "Volatility",
		summary:  "How widely returns swing around their average.",
		caption:  "Same steps, different scale: low vs high volatility",
		generate: func() any { return DualRandomWalk() },
	},
	SlugDrawdown: {
		title:    "Drawdown",
		summary:  "The fall from a running peak to a later trough.",
		caption:  "Price path and its drawdown from the running peak",
		generate: func() any { return PriceDrawdownPair() },
	},
	SlugVaRES: {
		title:    "VaR & Expected Shortfall",
		summary:  "Tail loss thresholds and the average loss beyond them.",
		caption:  "Fat-tailed return distribution with VaR 95% and ES 95%",
		generate: func() any { return FatTailHistogram() },
	},
	SlugMarkowitz: {
		title:    "Markowitz & the Efficient Frontier",
		summary:  "The best achievable return for each level of risk.",
		caption:  "Efficient frontier above a cloud of feasible portfolios",
		generate: func() any { return FrontierIllustration() },
	},
}

// Lessons returns every lesson in menu order.
func Lessons() []Lesson {
	out := make([]Lesson, 0, len(lessonOrder))
	for _, slug := range lessonOrder {
		l, _ := LessonBySlug(slug)
		out = append(out, l)
	}
	return out
}

// LessonBySlug returns the lesson for slug with its illustration data.
func LessonBySlug(slug string) (Lesson, error) {
	e, ok := lessons[slug]
	if !ok {
		return Lesson{}, fmt.Errorf("unknown lesson %q", slug)
	}
	return Lesson{
		Slug:    slug,
		Title:   e.title,
		Summary: e.summary,
		Caption: e.caption,
		Data:    e.generate(),
	}, nil
}

// Slugs returns the lesson slugs in menu order.
func Slugs() []string {
	out := make([]string, len(lessonOrder))
	copy(out, lessonOrder)
	return out
}
