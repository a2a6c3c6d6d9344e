package dashboard

import (
	"time"

	"github.com/j-veylop/pstats/internal/config"
	"github.com/j-veylop/pstats/internal/models"
)

// tickMsg is sent periodically to trigger a stats refresh.
type tickMsg time.Time

// sitesLoadedMsg contains the site list, or the error that prevented it.
type sitesLoadedMsg struct {
	Sites []models.Site
	Err   error
}

// statsLoadedMsg contains one site's refreshed summary.
type statsLoadedMsg struct {
	Site    string
	Metrics *models.MetricValues
	Err     error
}

// seriesLoadedMsg contains the selected site's timeseries for charting.
type seriesLoadedMsg struct {
	Site   string
	Points []models.TimeseriesPoint
	Err    error
}

// configChangedMsg signals that the watched .env file was rewritten.
type configChangedMsg struct{}

// configReloadedMsg contains the reloaded configuration.
type configReloadedMsg struct {
	Cfg *config.Config
	Err error
}
