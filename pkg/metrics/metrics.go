package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	// StageRuns counts pipeline stage executions by outcome (ok, precondition, error, skipped).
	StageRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seeder_stage_runs_total",
			Help: "Total number of pipeline stage executions by outcome",
		},
		[]string{"stage", "outcome"},
	)

	// StageDuration observes how long each stage took, including its commit.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seeder_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{.05, .1, .5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"stage"},
	)

	// RowsInserted counts rows written per entity.
	RowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seeder_rows_inserted_total",
			Help: "Total number of rows inserted by the seeder",
		},
		[]string{"entity"},
	)

	// ItemsSkipped counts generated items that were dropped, by reason.
	ItemsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seeder_items_skipped_total",
			Help: "Total number of generated items skipped",
		},
		[]string{"entity", "reason"},
	)

	// APICalls counts calls to the storefront API by endpoint and outcome.
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seeder_api_calls_total",
			Help: "Total number of storefront API calls",
		},
		[]string{"endpoint", "outcome"},
	)
)

// Push sends everything gathered by g to a Prometheus Pushgateway under job,
// grouped by run id. An empty url is a no-op.
func Push(ctx context.Context, url, job, runID string, g prometheus.Gatherer) error {
	if url == "" {
		return nil
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}

	err := push.New(url, job).
		Gatherer(g).
		Grouping("run_id", runID).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
