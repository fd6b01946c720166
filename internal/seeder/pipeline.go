package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/seeder/pkg/errors"
	"github.com/utafrali/EcommerceGo/seeder/pkg/logger"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
	"github.com/utafrali/EcommerceGo/seeder/pkg/tracing"
)

const tracerName = "github.com/utafrali/EcommerceGo/seeder/internal/seeder"

// Stage names in execution order.
const (
	StageSizes      = "sizes"
	StageCategories = "categories"
	StageColors     = "colors"
	StageProducts   = "products"
	StageVariants   = "variants"
	StageAddresses  = "addresses"
	StageOrders     = "orders"
	StageReviews    = "reviews"
	StagePromotions = "promotions"
)

// Presets.
const (
	PresetFull      = "full"
	PresetRemaining = "remaining"
)

// Stage outcomes recorded in metrics and reports.
const (
	OutcomeOK           = "ok"
	OutcomePrecondition = "precondition"
	OutcomeError        = "error"
)

// AllStages lists every stage in dependency order.
var AllStages = []string{
	StageSizes,
	StageCategories,
	StageColors,
	StageProducts,
	StageVariants,
	StageAddresses,
	StageOrders,
	StageReviews,
	StagePromotions,
}

var presets = map[string][]string{
	PresetFull:      AllStages,
	PresetRemaining: {StageAddresses, StageOrders, StageReviews},
}

// SelectStages resolves a preset narrowed by only and reduced by skip.
// The result keeps dependency order regardless of the order names were given in.
func SelectStages(preset string, only, skip []string) ([]string, error) {
	if preset == "" {
		preset = PresetFull
	}
	base, ok := presets[preset]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown preset %q, must be one of: %s, %s", preset, PresetFull, PresetRemaining))
	}
	for _, name := range slices.Concat(only, skip) {
		if !slices.Contains(AllStages, name) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown stage %q, must be one of: %s", name, strings.Join(AllStages, ", ")))
		}
	}

	out := make([]string, 0, len(base))
	for _, name := range base {
		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}
		if slices.Contains(skip, name) {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

// StageResult describes one executed stage.
type StageResult struct {
	Stage    string
	Outcome  string
	Rows     int
	Duration time.Duration
}

// Report summarizes a run.
type Report struct {
	RunID   string
	Results []StageResult
}

type stageFunc func(s *Seeder, ctx context.Context, repos repository.Repositories, st *runState) (int, error)

var stageFuncs = map[string]stageFunc{
	StageSizes:      (*Seeder).seedSizes,
	StageCategories: (*Seeder).seedCategories,
	StageColors:     (*Seeder).seedColors,
	StageProducts:   (*Seeder).seedProducts,
	StageVariants:   (*Seeder).seedVariants,
	StageAddresses:  (*Seeder).seedAddresses,
	StageOrders:     (*Seeder).seedOrders,
	StageReviews:    (*Seeder).seedReviews,
	StagePromotions: (*Seeder).seedPromotions,
}

// Run executes stages in order, each in its own transaction. A stage whose
// inputs are missing is logged and skipped; any other error stops the run,
// leaving earlier stages committed.
func (s *Seeder) Run(ctx context.Context, runID string, stages []string) (Report, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	report := Report{RunID: runID}
	ctx = logger.WithRunID(ctx, runID)

	ctx, span := tracing.Tracer(tracerName).Start(ctx, "seeder.Run")
	var runErr error
	defer func() {
		tracing.End(span, runErr, attribute.String("run_id", runID), attribute.Int("stages", len(stages)))
	}()

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "seeding started", slog.Any("stages", stages))

	st := &runState{}
	for _, name := range stages {
		if err := ctx.Err(); err != nil {
			runErr = err
			return report, err
		}
		res, err := s.runStage(ctx, name, st)
		report.Results = append(report.Results, res)
		if err != nil {
			runErr = fmt.Errorf("stage %s: %w", name, err)
			return report, runErr
		}
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "seeding finished", slog.Int("stages", len(report.Results)))
	return report, nil
}

func (s *Seeder) runStage(ctx context.Context, name string, st *runState) (StageResult, error) {
	fn, ok := stageFuncs[name]
	if !ok {
		return StageResult{Stage: name, Outcome: OutcomeError}, apperrors.InvalidInput(fmt.Sprintf("unknown stage %q", name))
	}

	ctx = logger.WithStage(ctx, name)
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "seeder.stage."+name)

	stage := *s
	stage.logger = logger.WithContext(ctx, s.logger)

	start := time.Now()
	rows := 0
	err := s.store.InTx(ctx, func(repos repository.Repositories) error {
		n, err := fn(&stage, ctx, repos, st)
		rows = n
		return err
	})
	res := StageResult{Stage: name, Outcome: OutcomeOK, Rows: rows, Duration: time.Since(start)}

	switch {
	case err == nil:
		stage.logger.InfoContext(ctx, "stage completed",
			slog.Int("rows", rows),
			slog.Duration("duration", res.Duration),
		)
	case apperrors.IsPrecondition(err):
		res.Outcome = OutcomePrecondition
		res.Rows = 0
		stage.logger.WarnContext(ctx, "precondition not met, stage skipped", slog.String("reason", err.Error()))
		err = nil
	default:
		res.Outcome = OutcomeError
		stage.logger.ErrorContext(ctx, "stage failed", slog.String("error", err.Error()))
	}

	metrics.StageRuns.WithLabelValues(name, res.Outcome).Inc()
	metrics.StageDuration.WithLabelValues(name).Observe(res.Duration.Seconds())
	tracing.End(span, err, attribute.String("outcome", res.Outcome), attribute.Int("rows", res.Rows))
	return res, err
}

// Clear truncates every table the pipeline writes.
func (s *Seeder) Clear(ctx context.Context) error {
	err := s.store.InTx(ctx, func(repos repository.Repositories) error {
		return repos.Maintenance.Truncate(ctx, repository.SeededTables)
	})
	if err != nil {
		return fmt.Errorf("clear seeded data: %w", err)
	}
	s.logger.InfoContext(ctx, "seeded tables truncated", slog.Any("tables", repository.SeededTables))
	return nil
}
