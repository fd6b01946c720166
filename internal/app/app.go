package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/utafrali/EcommerceGo/seeder/internal/client"
	"github.com/utafrali/EcommerceGo/seeder/internal/config"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository/postgres"
	"github.com/utafrali/EcommerceGo/seeder/internal/seeder"
	"github.com/utafrali/EcommerceGo/seeder/internal/source"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
	"github.com/utafrali/EcommerceGo/seeder/pkg/health"
	"github.com/utafrali/EcommerceGo/seeder/pkg/httpclient"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
	"github.com/utafrali/EcommerceGo/seeder/pkg/tracing"
)

const serviceName = "seeder"

// Actions accepted by Run.
const (
	ActionSeed  = "seed"
	ActionClear = "clear"
)

// Options select what a single invocation does.
type Options struct {
	Action string
	Preset string
	Only   []string
	Skip   []string

	// Yes skips the interactive confirmation of the clear action.
	Yes bool
	In  io.Reader
	Out io.Writer
}

// App wires together all dependencies for one seeder invocation.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	auth           *client.AuthClient
	seeder         *seeder.Seeder
	preflight      *health.Preflight
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)
	}

	// Storefront API clients. Every call is made once; the review endpoint
	// additionally sits behind a circuit breaker so an outage fails fast.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.HTTPTimeout
	base := httpclient.New(httpCfg)

	authClient := client.NewAuthClient(cfg.APIBaseURL, base)
	addressClient := client.NewAddressClient(cfg.APIBaseURL, httpclient.NewRateLimitedClient(base, cfg.AddressAPIRPS, 1))
	reviewClient := client.NewReviewClient(cfg.APIBaseURL,
		httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("reviews"), logger))

	sources := source.NewReader(cfg.SourceFiles, logger)

	// Build the dependency graph.
	s := seeder.New(seeder.Deps{
		Store:    postgres.NewStore(pool),
		Sheets:   sources,
		Regions:  addressClient,
		Auth:     authClient,
		Reviews:  reviewClient,
		Rand:     seeder.NewRand(cfg.RandomSeed),
		Settings: seeder.SettingsFrom(cfg),
		Logger:   logger,
	})

	// Preflight checks.
	preflight := health.NewPreflight(5 * time.Second)
	preflight.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	preflight.RegisterNonCritical("source_files", sources.Check)

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		auth:           authClient,
		seeder:         s,
		preflight:      preflight,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run performs the requested action and then releases every resource.
func (a *App) Run(ctx context.Context, opts Options) (err error) {
	defer func() {
		err = errors.Join(err, a.Shutdown())
	}()

	switch opts.Action {
	case ActionSeed, "":
		return a.seed(ctx, opts)
	case ActionClear:
		return a.clear(ctx, opts)
	default:
		return fmt.Errorf("unknown action %q, must be %s or %s", opts.Action, ActionSeed, ActionClear)
	}
}

func (a *App) seed(ctx context.Context, opts Options) error {
	stages, err := seeder.SelectStages(opts.Preset, opts.Only, opts.Skip)
	if err != nil {
		return err
	}

	if err := a.checkDependencies(ctx); err != nil {
		return err
	}

	if a.cfg.SkipAdminLogin {
		a.logger.Warn("admin login skipped")
	} else if err := a.adminLogin(ctx); err != nil {
		return err
	}

	report, runErr := a.seeder.Run(ctx, "", stages)
	for _, res := range report.Results {
		a.logger.Info("stage summary",
			slog.String("stage", res.Stage),
			slog.String("outcome", res.Outcome),
			slog.Int("rows", res.Rows),
			slog.Duration("duration", res.Duration),
		)
	}

	// Push even when interrupted so a partial run is still visible.
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := metrics.Push(pushCtx, a.cfg.PushgatewayURL, serviceName, report.RunID, prometheus.DefaultGatherer); err != nil {
		a.logger.Warn("metrics push failed", slog.String("error", err.Error()))
	}

	if runErr != nil {
		return runErr
	}
	a.logger.Info("seeding complete", slog.String("run_id", report.RunID), slog.Int("stages", len(report.Results)))
	return nil
}

func (a *App) checkDependencies(ctx context.Context) error {
	report := a.preflight.Run(ctx)
	for name, c := range report.Checks {
		if c.Status == health.StatusDown {
			a.logger.Warn("preflight check failed",
				slog.String("check", name),
				slog.Bool("critical", c.Critical),
				slog.String("error", c.Error),
			)
		}
	}
	if err := report.Err(); err != nil {
		return fmt.Errorf("preflight: %w", err)
	}
	return nil
}

func (a *App) adminLogin(ctx context.Context) error {
	token, err := a.auth.AdminLogin(ctx, a.cfg.AdminEmail, a.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin login: %w", err)
	}

	session, err := client.InspectToken(token)
	if err != nil {
		a.logger.Info("admin login succeeded")
		a.logger.Debug("admin token is not a JWT", slog.String("error", err.Error()))
		return nil
	}
	a.logger.Info("admin login succeeded",
		slog.String("subject", session.Subject),
		slog.String("role", session.Role),
		slog.Time("expires_at", session.ExpiresAt),
	)
	if session.Expired(time.Now()) {
		a.logger.Warn("admin token is already expired")
	}
	return nil
}

func (a *App) clear(ctx context.Context, opts Options) error {
	if !opts.Yes {
		prompt := fmt.Sprintf("This truncates %s in %s. Type 'yes' to continue: ",
			strings.Join(repository.SeededTables, ", "), a.cfg.PostgresDB)
		if !Confirm(opts.In, opts.Out, prompt) {
			a.logger.Info("clear aborted")
			return nil
		}
	}
	return a.seeder.Clear(ctx)
}

// Confirm writes prompt to out and reports whether the next line read from
// in is "yes". A nil reader never confirms.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	if in == nil {
		return false
	}
	if out != nil {
		_, _ = io.WriteString(out, prompt)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// Shutdown flushes spans and closes the pool.
func (a *App) Shutdown() error {
	var errs []error

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}
	return errors.Join(errs...)
}
