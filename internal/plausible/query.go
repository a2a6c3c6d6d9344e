package plausible

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/j-veylop/pstats/internal/models"
)

// QueryRequest is the body of a stats query. Optional fields are omitted
// from the wire format when empty.
type QueryRequest struct {
	SiteID     string     `json:"site_id"`
	Metrics    []string   `json:"metrics"`
	DateRange  string     `json:"date_range"`
	Dimensions []string   `json:"dimensions,omitempty"`
	Filters    [][]any    `json:"filters,omitempty"`
	OrderBy    [][]string `json:"order_by,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

// ResultRow is one row of a query result. Aggregate queries produce a
// single row with no dimensions; breakdown queries produce one row per
// dimension value combination.
type ResultRow struct {
	Metrics    *models.MetricValues
	Dimensions []string
}

// IsAggregate reports whether the row has no breakdown dimensions.
func (r ResultRow) IsAggregate() bool {
	return len(r.Dimensions) == 0
}

// QueryResult is the parsed response of a stats query.
type QueryResult struct {
	Rows []ResultRow
	Meta map[string]any
}

// QueryStats posts a structured query to the stats endpoint and parses the
// result rows. The row shape depends on the request, so parsing is schema-
// free: every numeric field is a metric, the dimensions field is the
// breakdown key.
func (c *Client) QueryStats(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	if req.SiteID == "" {
		return nil, fmt.Errorf("site_id is required")
	}
	if err := models.ValidateMetrics(req.Metrics); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if req.DateRange == "" {
		return nil, fmt.Errorf("date_range is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+queryPath, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats for %s: %w", req.SiteID, err)
	}

	return parseQueryResult(body), nil
}

func parseQueryResult(body []byte) *QueryResult {
	result := &QueryResult{}

	gjson.GetBytes(body, "results").ForEach(func(_, row gjson.Result) bool {
		parsed := ResultRow{Metrics: models.NewMetricValues()}
		row.ForEach(func(key, value gjson.Result) bool {
			switch {
			case key.String() == "dimensions":
				value.ForEach(func(_, dim gjson.Result) bool {
					parsed.Dimensions = append(parsed.Dimensions, dim.String())
					return true
				})
			case value.Type == gjson.Number:
				parsed.Metrics.Set(key.String(), value.Float())
			}
			return true
		})
		result.Rows = append(result.Rows, parsed)
		return true
	})

	if meta := gjson.GetBytes(body, "meta"); meta.IsObject() {
		if m, ok := meta.Value().(map[string]any); ok {
			result.Meta = m
		}
	}

	return result
}
