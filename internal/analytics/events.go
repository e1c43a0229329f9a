package analytics

import "github.com/bobmcallan/allocation-lab/internal/models"

// EventsInRange returns the events dated within [first price date, last price date].
// Dates compare as YYYY-MM-DD strings; callers must keep that format.
// Output keeps the input event order. An empty price series has no range.
func EventsInRange(prices []models.PricePoint, events []models.MarketEvent) []models.MarketEvent {
	out := []models.MarketEvent{}
	if len(prices) == 0 {
		return out
	}

	first, last := prices[0].Date, prices[len(prices)-1].Date
	for _, e := range events {
		if e.Date >= first && e.Date <= last {
			out = append(out, e)
		}
	}
	return out
}
