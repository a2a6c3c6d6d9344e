package models

// SiteStats is the formatted aggregate result for one site.
type SiteStats struct {
	Domain   string
	Timezone string
	Metrics  *MetricValues
}

// MultiSiteStats aggregates a sequential fetch across every listed site.
// Per-site failures are recorded here instead of aborting the batch.
type MultiSiteStats struct {
	TotalSites int
	Successful int
	Failed     int
	Results    map[string]SiteStats
	Errors     map[string]string
}

// TimeseriesPoint is one bucket of a metric broken down over time.
type TimeseriesPoint struct {
	Label string
	Value float64
}
