package plausible

import (
	"math"

	"github.com/j-veylop/pstats/internal/models"
)

// FormatStatsSummary reshapes a raw aggregate result into the stable
// metrics mapping the reports emit. Missing metrics are zero-filled so an
// empty result set reads as a quiet site, not an error. Ratio metrics are
// rounded to the configured precision; counts pass through untouched.
//
// The transformation is pure and idempotent: formatting an already-rounded
// summary yields the same values.
func (c *Client) FormatStatsSummary(result *QueryResult, metrics []string) *models.MetricValues {
	if metrics == nil {
		metrics = models.DefaultMetrics()
	}

	var row ResultRow
	if result != nil && len(result.Rows) > 0 {
		row = result.Rows[0]
	}

	summary := models.NewMetricValues()
	for _, name := range metrics {
		value, _ := row.Metrics.Get(name)
		if models.IsRatioMetric(name) {
			value = roundTo(value, c.precision)
		}
		summary.Set(name, value)
	}

	return summary
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
