package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/pstats/internal/config"
	"github.com/j-veylop/pstats/internal/logger"
	"github.com/j-veylop/pstats/internal/models"
	"github.com/j-veylop/pstats/internal/plausible"
)

// requestTimeout bounds each API call issued from the dashboard so a stuck
// request cannot stall the refresh loop.
const requestTimeout = 30 * time.Second

// tickCmd returns a command that sends a tickMsg after the interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadSitesCmd returns a command that fetches the site list.
func loadSitesCmd(client *plausible.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sites, err := client.ListSites(ctx)
		return sitesLoadedMsg{Sites: sites, Err: err}
	}
}

// loadStatsCmd returns a command that fetches one site's summary.
func loadStatsCmd(client *plausible.Client, site string, period models.Period) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.GetPeriodStats(ctx, site, period, nil)
		if err != nil {
			return statsLoadedMsg{Site: site, Err: err}
		}
		return statsLoadedMsg{Site: site, Metrics: client.FormatStatsSummary(result, nil)}
	}
}

// loadSeriesCmd returns a command that fetches the visitors timeseries for
// the chart.
func loadSeriesCmd(client *plausible.Client, site string, period models.Period) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		points, err := client.GetTimeseries(ctx, site, period, models.MetricVisitors)
		return seriesLoadedMsg{Site: site, Points: points, Err: err}
	}
}

// waitForConfigChangeCmd returns a command that blocks on the watcher's next
// change event.
func waitForConfigChangeCmd(w *ConfigWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// reloadConfigCmd returns a command that re-reads configuration from the
// environment.
func reloadConfigCmd() tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Load()
		return configReloadedMsg{Cfg: cfg, Err: err}
	}
}

// notifyFailureCmd returns a command that raises a desktop notification for
// a site that just started failing.
func notifyFailureCmd(site, message string) tea.Cmd {
	return func() tea.Msg {
		if err := beeep.Notify("pstats", site+": "+message, ""); err != nil {
			logger.Debug("desktop notification failed", "error", err)
		}
		return nil
	}
}
