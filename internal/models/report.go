package models

import "time"

// Report envelopes are the top-level JSON objects the tool emits, both on
// stdout and in saved files.

// SiteListReport wraps the output of the list mode.
type SiteListReport struct {
	Timestamp  string `json:"timestamp"`
	TotalSites int    `json:"total_sites"`
	Sites      []Site `json:"sites"`
}

// SiteReport wraps a single site's stats.
type SiteReport struct {
	Timestamp string        `json:"timestamp"`
	Site      string        `json:"site"`
	Period    string        `json:"period"`
	Timezone  string        `json:"timezone,omitempty"`
	Metrics   *MetricValues `json:"metrics"`
}

// SiteResult is one entry of a multi-site report: either stats or an error.
type SiteResult struct {
	Timezone string        `json:"timezone,omitempty"`
	Metrics  *MetricValues `json:"metrics,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// MultiSiteReport wraps the all-sites mode, including per-site failure
// accounting.
type MultiSiteReport struct {
	Timestamp  string                `json:"timestamp"`
	Period     string                `json:"period"`
	TotalSites int                   `json:"total_sites"`
	Successful int                   `json:"successful"`
	Failed     int                   `json:"failed"`
	Sites      map[string]SiteResult `json:"sites"`
}

// ReportTimestamp renders an envelope timestamp. Local time, RFC 3339, used
// consistently by every mode.
func ReportTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FileTimestamp renders the timestamp embedded in saved report filenames.
func FileTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
