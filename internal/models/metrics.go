package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Metric names understood by the stats API.
const (
	MetricVisitors       = "visitors"
	MetricVisits         = "visits"
	MetricPageviews      = "pageviews"
	MetricViewsPerVisit  = "views_per_visit"
	MetricBounceRate     = "bounce_rate"
	MetricVisitDuration  = "visit_duration"
	MetricEvents         = "events"
	MetricConversionRate = "conversion_rate"
)

// DefaultMetrics returns the metric set used when the caller does not ask
// for specific metrics.
func DefaultMetrics() []string {
	return []string{
		MetricVisitors,
		MetricVisits,
		MetricPageviews,
		MetricViewsPerVisit,
		MetricBounceRate,
		MetricVisitDuration,
	}
}

// KnownMetrics returns every metric name this tool accepts.
func KnownMetrics() []string {
	return []string{
		MetricVisitors,
		MetricVisits,
		MetricPageviews,
		MetricViewsPerVisit,
		MetricBounceRate,
		MetricVisitDuration,
		MetricEvents,
		MetricConversionRate,
	}
}

// ValidateMetrics rejects unknown or duplicate metric names.
func ValidateMetrics(metrics []string) error {
	if len(metrics) == 0 {
		return fmt.Errorf("metric list is empty")
	}
	known := make(map[string]bool, len(KnownMetrics()))
	for _, m := range KnownMetrics() {
		known[m] = true
	}
	seen := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		if !known[m] {
			return fmt.Errorf("unknown metric %q", m)
		}
		if seen[m] {
			return fmt.Errorf("duplicate metric %q", m)
		}
		seen[m] = true
	}
	return nil
}

// IsRatioMetric reports whether a metric is a ratio or percentage that gets
// display rounding. Counts are never rounded.
func IsRatioMetric(name string) bool {
	switch name {
	case MetricViewsPerVisit, MetricBounceRate, MetricConversionRate:
		return true
	}
	return false
}

// MetricValues is a metric-name-to-value mapping that keeps its insertion
// order. The API contract says metric order carries no meaning, but the
// emitted JSON preserves the requested order, which a plain map cannot do.
type MetricValues struct {
	names  []string
	values map[string]float64
}

// NewMetricValues returns an empty mapping.
func NewMetricValues() *MetricValues {
	return &MetricValues{values: make(map[string]float64)}
}

// Set stores a value, appending the name on first sight.
func (m *MetricValues) Set(name string, value float64) {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get returns the value for a metric and whether it is present.
func (m *MetricValues) Get(name string) (float64, bool) {
	if m == nil || m.values == nil {
		return 0, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Names returns the metric names in insertion order.
func (m *MetricValues) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of metrics present.
func (m *MetricValues) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// formatNumber renders a value without a trailing ".0" for whole numbers,
// matching how the API itself serializes counts.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalJSON emits an object with keys in insertion order.
func (m *MetricValues) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.names) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(formatNumber(m.values[name]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping the key order of the document.
func (m *MetricValues) UnmarshalJSON(data []byte) error {
	m.names = nil
	m.values = make(map[string]float64)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metrics: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metrics: expected string key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("metrics: value for %q is not a number", key)
		}
		v, err := num.Float64()
		if err != nil {
			return err
		}
		m.Set(key, v)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
