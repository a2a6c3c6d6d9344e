package plausible

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/j-veylop/pstats/internal/models"
)

func TestGetPeriodStats_ResolvesDateRange(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		if got := gjson.GetBytes(body, "date_range").String(); got != "30d" {
			t.Errorf("date_range = %q, want 30d", got)
		}
		if got := gjson.GetBytes(body, "site_id").String(); got != "example.com" {
			t.Errorf("site_id = %q, want example.com", got)
		}
		// Nil metrics means the default six.
		if got := gjson.GetBytes(body, "metrics.#").Int(); got != 6 {
			t.Errorf("metrics length = %d, want 6", got)
		}
		return jsonResponse(200, `{"results":[{"visitors":99}]}`), nil
	})

	result, err := c.GetPeriodStats(context.Background(), "example.com", models.Period30Days, nil)
	if err != nil {
		t.Fatalf("GetPeriodStats failed: %v", err)
	}
	if v, _ := result.Rows[0].Metrics.Get("visitors"); v != 99 {
		t.Errorf("visitors = %v, want 99", v)
	}
}

func TestGetLast24hStats(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		if got := gjson.GetBytes(body, "date_range").String(); got != "day" {
			t.Errorf("date_range = %q, want day", got)
		}
		return jsonResponse(200, `{"results":[{"visitors":1}]}`), nil
	})

	if _, err := c.GetLast24hStats(context.Background(), "example.com"); err != nil {
		t.Fatalf("GetLast24hStats failed: %v", err)
	}
}

func TestGetPeriodStats_InvalidPeriod(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("invalid periods must not reach the network")
		return nil, nil
	})

	if _, err := c.GetPeriodStats(context.Background(), "example.com", models.Period("yearly"), nil); err == nil {
		t.Error("GetPeriodStats should reject an unknown period")
	}
}

func TestGetAllSitesStats_PartialFailure(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodGet {
			return jsonResponse(200, `{"sites":[
				{"domain":"a.example","timezone":"UTC"},
				{"domain":"b.example","timezone":"UTC"},
				{"domain":"c.example","timezone":"UTC"}
			]}`), nil
		}
		body, _ := io.ReadAll(req.Body)
		if gjson.GetBytes(body, "site_id").String() == "b.example" {
			return jsonResponse(500, `{"error":"site is broken"}`), nil
		}
		return jsonResponse(200, `{"results":[{"visitors":7,"bounce_rate":50}]}`), nil
	})

	stats, err := c.GetAllSitesStats(context.Background(), models.PeriodDay, []string{"visitors", "bounce_rate"})
	if err != nil {
		t.Fatalf("GetAllSitesStats failed: %v", err)
	}

	if stats.TotalSites != 3 {
		t.Errorf("TotalSites = %d, want 3", stats.TotalSites)
	}
	if stats.Successful != 2 {
		t.Errorf("Successful = %d, want 2", stats.Successful)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if len(stats.Results) != 2 {
		t.Errorf("got %d results, want 2", len(stats.Results))
	}
	if _, ok := stats.Results["b.example"]; ok {
		t.Error("failed site must not appear in results")
	}
	if msg, ok := stats.Errors["b.example"]; !ok || !strings.Contains(msg, "site is broken") {
		t.Errorf("errors[b.example] = %q, want the API message", msg)
	}
	if got := stats.Results["a.example"]; got.Timezone != "UTC" || got.Metrics.Len() != 2 {
		t.Errorf("results[a.example] = %+v", got)
	}
}

func TestGetAllSitesStats_ListingFailure(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(401, `{"error":"bad key"}`), nil
	})

	_, err := c.GetAllSitesStats(context.Background(), models.PeriodDay, nil)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("listing failure should surface as *AuthError, got %v", err)
	}
}

func TestGetTimeseries(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		if got := gjson.GetBytes(body, "dimensions.0").String(); got != "time:hour" {
			t.Errorf("day period should bucket by hour, got %q", got)
		}
		return jsonResponse(200, `{"results":[
			{"dimensions":["2024-03-01 10:00:00"],"visitors":3},
			{"dimensions":["2024-03-01 11:00:00"],"visitors":8}
		]}`), nil
	})

	points, err := c.GetTimeseries(context.Background(), "example.com", models.PeriodDay, "visitors")
	if err != nil {
		t.Fatalf("GetTimeseries failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[1].Label != "2024-03-01 11:00:00" || points[1].Value != 8 {
		t.Errorf("points[1] = %+v", points[1])
	}
}

func TestGetTimeseries_NoData(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"results":[]}`), nil
	})

	_, err := c.GetTimeseries(context.Background(), "example.com", models.Period7Days, "visitors")
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("empty result should surface as *NoDataError, got %v", err)
	}
	if noData.SiteID != "example.com" {
		t.Errorf("SiteID = %q", noData.SiteID)
	}
}
