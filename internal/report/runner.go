// Package report drives the one-shot fetch modes: list sites, one site's
// stats, or stats for every accessible site. Each mode emits a JSON envelope
// to stdout, or to a timestamped file when saving is requested.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/j-veylop/pstats/internal/config"
	"github.com/j-veylop/pstats/internal/logger"
	"github.com/j-veylop/pstats/internal/models"
	"github.com/j-veylop/pstats/internal/plausible"
)

// Runner executes report modes against one Plausible instance.
type Runner struct {
	client *plausible.Client
	cfg    *config.Config

	// stdout and now are swappable in tests.
	stdout io.Writer
	now    func() time.Time
}

// NewRunner creates a runner writing reports to os.Stdout.
func NewRunner(client *plausible.Client, cfg *config.Config) *Runner {
	return &Runner{
		client: client,
		cfg:    cfg,
		stdout: os.Stdout,
		now:    time.Now,
	}
}

// ListSites emits the accessible sites as a report envelope.
func (r *Runner) ListSites(ctx context.Context, save bool) error {
	logger.Info("listing sites", "base_url", r.client.BaseURL())

	sites, err := r.client.ListSites(ctx)
	if err != nil {
		return err
	}
	if sites == nil {
		sites = []models.Site{}
	}

	report := models.SiteListReport{
		Timestamp:  models.ReportTimestamp(r.now()),
		TotalSites: len(sites),
		Sites:      sites,
	}
	return r.emit(report, r.fileName(""), save)
}

// SingleSite fetches one site's stats for a period and emits them.
func (r *Runner) SingleSite(ctx context.Context, site string, period models.Period, metrics []string, save bool) error {
	logger.Info("fetching stats", "site", site, "period", string(period))

	result, err := r.client.GetPeriodStats(ctx, site, period, metrics)
	if err != nil {
		return err
	}

	report := models.SiteReport{
		Timestamp: models.ReportTimestamp(r.now()),
		Site:      site,
		Period:    string(period),
		Metrics:   r.client.FormatStatsSummary(result, metrics),
	}
	return r.emit(report, r.fileName(site), save)
}

// AllSites fetches stats for every accessible site and emits a combined
// envelope. Per-site failures are reported inside the envelope, not as an
// error; the run only fails if the listing itself does.
func (r *Runner) AllSites(ctx context.Context, period models.Period, metrics []string, save bool) error {
	logger.Info("fetching stats for all sites", "period", string(period))

	stats, err := r.client.GetAllSitesStats(ctx, period, metrics)
	if err != nil {
		return err
	}

	report := models.MultiSiteReport{
		Timestamp:  models.ReportTimestamp(r.now()),
		Period:     string(period),
		TotalSites: stats.TotalSites,
		Successful: stats.Successful,
		Failed:     stats.Failed,
		Sites:      make(map[string]models.SiteResult, stats.TotalSites),
	}
	for domain, site := range stats.Results {
		report.Sites[domain] = models.SiteResult{
			Timezone: site.Timezone,
			Metrics:  site.Metrics,
		}
	}
	for domain, msg := range stats.Errors {
		report.Sites[domain] = models.SiteResult{Error: msg}
	}

	if stats.Failed > 0 {
		logger.Warn("some sites failed", "failed", stats.Failed, "total", stats.TotalSites)
	}
	return r.emit(report, r.fileName(""), save)
}

// emit renders the envelope as indented JSON to stdout, or to a file under
// the output directory when save is set.
func (r *Runner) emit(report any, fileName string, save bool) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if !save {
		_, err = fmt.Fprintln(r.stdout, string(data))
		return err
	}

	if err := config.EnsureDir(r.cfg.OutputDir); err != nil {
		return err
	}
	path := filepath.Join(r.cfg.OutputDir, fileName)

	// Write to a temp file first, then rename, so a crash never leaves a
	// half-written report behind.
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	logger.Info("report saved", "path", path)
	return nil
}

// fileName builds the saved report name, with the site folded in for
// single-site reports.
func (r *Runner) fileName(site string) string {
	ts := models.FileTimestamp(r.now())
	if site == "" {
		return fmt.Sprintf("plausible_stats_%s.json", ts)
	}
	return fmt.Sprintf("plausible_stats_%s_%s.json", site, ts)
}
