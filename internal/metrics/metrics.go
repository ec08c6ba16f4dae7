// Package metrics exports rating aggregates as Prometheus gauges written to
// a node_exporter textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nibzard/dayrate/internal/stats"
	"github.com/nibzard/dayrate/internal/tracker"
)

// Exporter owns a private registry so repeated exporters never collide.
type Exporter struct {
	registry *prometheus.Registry

	DailyAverage     prometheus.Gauge
	WeeklyAverage    prometheus.Gauge
	TotalAverage     prometheus.Gauge
	WorkspaceAverage *prometheus.GaugeVec
	Tasks            prometheus.Gauge
	RatedDays        prometheus.Gauge
	TrendBucket      *prometheus.GaugeVec
}

// NewExporter registers every gauge on a fresh registry.
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Exporter{
		registry: reg,
		DailyAverage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dayrate_daily_average",
			Help: "Average rating of the selected day, 0 when unrated",
		}),
		WeeklyAverage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dayrate_weekly_average",
			Help: "Average of the daily averages over the 7 days ending at the selected day",
		}),
		TotalAverage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dayrate_total_average",
			Help: "Average of every rated day's average",
		}),
		WorkspaceAverage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dayrate_workspace_daily_average",
			Help: "Average rating of the selected day per workspace",
		}, []string{"workspace"}),
		Tasks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dayrate_tasks",
			Help: "Number of defined tasks",
		}),
		RatedDays: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dayrate_rated_days",
			Help: "Number of days with at least one rating",
		}),
		TrendBucket: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dayrate_trend_bucket",
			Help: "Trend intensity 0-8 of each day in the 7-day window, offset 0 is the selected day",
		}, []string{"offset"}),
	}
}

// Registry returns the exporter's registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe sets every gauge from data as of date.
func (e *Exporter) Observe(data tracker.Data, date time.Time) {
	summary := stats.Summarize(data.Ratings, date)
	e.DailyAverage.Set(summary.Day)
	e.WeeklyAverage.Set(summary.Week)
	e.TotalAverage.Set(summary.Total)
	e.Tasks.Set(float64(len(data.Tasks)))

	rated := 0
	for day := range data.Ratings {
		if stats.DailyAverage(data.Ratings, day) > 0 {
			rated++
		}
	}
	e.RatedDays.Set(float64(rated))

	e.WorkspaceAverage.Reset()
	for _, ws := range data.Workspaces {
		v := stats.WorkspaceAverage(data.Ratings, data.Tasks, summary.Date, ws)
		e.WorkspaceAverage.WithLabelValues(ws).Set(v)
	}

	for i, b := range summary.Trend {
		offset := i - (stats.WindowDays - 1)
		e.TrendBucket.WithLabelValues(strconv.Itoa(offset)).Set(float64(b))
	}
}

// WriteTextfile writes the registry in text exposition format to path.
func (e *Exporter) WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("metrics file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
