package models

import (
	"encoding/json"
	"testing"
)

func TestValidateMetrics(t *testing.T) {
	tests := []struct {
		name    string
		metrics []string
		wantErr bool
	}{
		{"Defaults", DefaultMetrics(), false},
		{"AllKnown", KnownMetrics(), false},
		{"Single", []string{"visitors"}, false},
		{"Empty", nil, true},
		{"Unknown", []string{"visitors", "clicks"}, true},
		{"Duplicate", []string{"visitors", "visitors"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetrics(tt.metrics)
			if tt.wantErr && err == nil {
				t.Error("ValidateMetrics() should fail")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateMetrics() failed: %v", err)
			}
		})
	}
}

func TestIsRatioMetric(t *testing.T) {
	ratios := []string{MetricViewsPerVisit, MetricBounceRate, MetricConversionRate}
	for _, m := range ratios {
		if !IsRatioMetric(m) {
			t.Errorf("IsRatioMetric(%q) = false", m)
		}
	}
	counts := []string{MetricVisitors, MetricVisits, MetricPageviews, MetricVisitDuration, MetricEvents}
	for _, m := range counts {
		if IsRatioMetric(m) {
			t.Errorf("IsRatioMetric(%q) = true", m)
		}
	}
}

func TestMetricValues_Order(t *testing.T) {
	mv := NewMetricValues()
	mv.Set("pageviews", 100)
	mv.Set("visitors", 40)
	mv.Set("bounce_rate", 52.5)

	names := mv.Names()
	want := []string{"pageviews", "visitors", "bounce_rate"}
	if len(names) != len(want) {
		t.Fatalf("Names() len = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	// Overwriting a value keeps the original position.
	mv.Set("pageviews", 101)
	if mv.Names()[0] != "pageviews" {
		t.Error("Set() on existing key should keep position")
	}
	if v, _ := mv.Get("pageviews"); v != 101 {
		t.Errorf("Get(pageviews) = %v, want 101", v)
	}
}

func TestMetricValues_MarshalOrder(t *testing.T) {
	mv := NewMetricValues()
	mv.Set("visitors", 42)
	mv.Set("bounce_rate", 51.3)
	mv.Set("pageviews", 120)

	data, err := json.Marshal(mv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"visitors":42,"bounce_rate":51.3,"pageviews":120}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestMetricValues_WholeNumbers(t *testing.T) {
	// Counts stored as float64 must not grow a ".0" suffix in output.
	mv := NewMetricValues()
	mv.Set("visitors", 5)

	data, err := json.Marshal(mv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"visitors":5}` {
		t.Errorf("Marshal = %s, want {\"visitors\":5}", data)
	}
}

func TestMetricValues_RoundTrip(t *testing.T) {
	mv := NewMetricValues()
	mv.Set("visits", 18)
	mv.Set("views_per_visit", 2.41)
	mv.Set("visit_duration", 93)

	data, err := json.Marshal(mv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back MetricValues
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if back.Len() != mv.Len() {
		t.Fatalf("round-trip Len = %d, want %d", back.Len(), mv.Len())
	}
	for i, name := range mv.Names() {
		if back.Names()[i] != name {
			t.Errorf("round-trip Names()[%d] = %q, want %q", i, back.Names()[i], name)
		}
		got, _ := back.Get(name)
		want, _ := mv.Get(name)
		if got != want {
			t.Errorf("round-trip %q = %v, want %v", name, got, want)
		}
	}
}

func TestMetricValues_UnmarshalRejectsNonNumbers(t *testing.T) {
	var mv MetricValues
	if err := json.Unmarshal([]byte(`{"visitors":"many"}`), &mv); err == nil {
		t.Error("Unmarshal should reject non-numeric values")
	}
}

func TestMetricValues_Empty(t *testing.T) {
	var nilMV *MetricValues
	if nilMV.Len() != 0 {
		t.Error("nil MetricValues Len should be 0")
	}
	if _, ok := nilMV.Get("visitors"); ok {
		t.Error("nil MetricValues Get should report absent")
	}

	data, err := json.Marshal(NewMetricValues())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("empty Marshal = %s, want {}", data)
	}
}
