package analytics

import "github.com/bobmcallan/allocation-lab/internal/models"

// TopContributionCount is how many risk contributions the bar chart shows.
const TopContributionCount = 8

// TopContributions returns the first TopContributionCount entries in their
// original order. Ordering is the optimizer's; nothing is re-sorted.
func TopContributions(rc []models.RiskContribution) []models.RiskContribution {
	n := min(len(rc), TopContributionCount)
	out := make([]models.RiskContribution, n)
	copy(out, rc[:n])
	return out
}
