package plausible

import (
	"context"
	"fmt"

	"github.com/j-veylop/pstats/internal/logger"
	"github.com/j-veylop/pstats/internal/models"
)

// GetPeriodStats fetches the requested metrics for one site over a period.
// A nil metric list means the default set.
func (c *Client) GetPeriodStats(ctx context.Context, siteID string, period models.Period, metrics []string) (*QueryResult, error) {
	dateRange, err := period.DateRange()
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = models.DefaultMetrics()
	}

	return c.QueryStats(ctx, QueryRequest{
		SiteID:    siteID,
		Metrics:   metrics,
		DateRange: dateRange,
	})
}

// GetLast24hStats fetches the default metric set for the last 24 hours.
func (c *Client) GetLast24hStats(ctx context.Context, siteID string) (*QueryResult, error) {
	return c.GetPeriodStats(ctx, siteID, models.PeriodDay, nil)
}

// GetAllSitesStats lists every accessible site and fetches its stats one
// site at a time. A per-site failure is recorded and counted; it never
// aborts the batch. Only a failed listing call returns an error.
func (c *Client) GetAllSitesStats(ctx context.Context, period models.Period, metrics []string) (*models.MultiSiteStats, error) {
	sites, err := c.ListSites(ctx)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = models.DefaultMetrics()
	}

	stats := &models.MultiSiteStats{
		TotalSites: len(sites),
		Results:    make(map[string]models.SiteStats, len(sites)),
		Errors:     make(map[string]string),
	}

	for _, site := range sites {
		result, err := c.GetPeriodStats(ctx, site.Domain, period, metrics)
		if err != nil {
			logger.Warn("site fetch failed", "site", site.Domain, "error", err)
			stats.Failed++
			stats.Errors[site.Domain] = err.Error()
			continue
		}

		stats.Successful++
		stats.Results[site.Domain] = models.SiteStats{
			Domain:   site.Domain,
			Timezone: site.Timezone,
			Metrics:  c.FormatStatsSummary(result, metrics),
		}
	}

	return stats, nil
}

// GetTimeseries fetches one metric bucketed over time for charting. Day
// periods bucket by hour, everything else by day.
func (c *Client) GetTimeseries(ctx context.Context, siteID string, period models.Period, metric string) ([]models.TimeseriesPoint, error) {
	dateRange, err := period.DateRange()
	if err != nil {
		return nil, err
	}
	if metric == "" {
		metric = models.MetricVisitors
	}

	dimension := "time:day"
	if period == models.PeriodDay {
		dimension = "time:hour"
	}

	result, err := c.QueryStats(ctx, QueryRequest{
		SiteID:     siteID,
		Metrics:    []string{metric},
		DateRange:  dateRange,
		Dimensions: []string{dimension},
	})
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, &NoDataError{SiteID: siteID}
	}

	points := make([]models.TimeseriesPoint, 0, len(result.Rows))
	for _, row := range result.Rows {
		label := ""
		if len(row.Dimensions) > 0 {
			label = row.Dimensions[0]
		}
		value, ok := row.Metrics.Get(metric)
		if !ok {
			return nil, fmt.Errorf("timeseries row for %s is missing %s", siteID, metric)
		}
		points = append(points, models.TimeseriesPoint{Label: label, Value: value})
	}

	return points, nil
}
