package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Checker is a function that checks the health of a dependency.
type Checker func(ctx context.Context) error

// Status represents the health status of a component.
type Status string

const (
	StatusUp       Status = "up"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// Report is the outcome of a preflight run.
type Report struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the result of a single health check.
type CheckResult struct {
	Status   Status `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// Err joins the failures of critical checks, or returns nil.
func (r Report) Err() error {
	names := make([]string, 0, len(r.Checks))
	for name := range r.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		c := r.Checks[name]
		if c.Critical && c.Status == StatusDown {
			errs = append(errs, fmt.Errorf("%s: %s", name, c.Error))
		}
	}
	return errors.Join(errs...)
}

type check struct {
	fn       Checker
	critical bool
}

// Preflight runs dependency checks before work starts. A failed critical
// check marks the report down; a failed non-critical check only degrades it.
type Preflight struct {
	mu      sync.RWMutex
	checks  map[string]check
	timeout time.Duration
}

// NewPreflight creates an empty preflight with a per-run timeout.
func NewPreflight(timeout time.Duration) *Preflight {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Preflight{
		checks:  make(map[string]check),
		timeout: timeout,
	}
}

// RegisterCritical adds a check whose failure must stop the run.
func (p *Preflight) RegisterCritical(name string, fn Checker) {
	p.register(name, fn, true)
}

// RegisterNonCritical adds a check whose failure is only reported.
func (p *Preflight) RegisterNonCritical(name string, fn Checker) {
	p.register(name, fn, false)
}

func (p *Preflight) register(name string, fn Checker, critical bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks[name] = check{fn: fn, critical: critical}
}

// Run executes every registered check sequentially.
func (p *Preflight) Run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.RLock()
	checks := make(map[string]check, len(p.checks))
	for k, v := range p.checks {
		checks[k] = v
	}
	p.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	overall := StatusUp

	for name, c := range checks {
		if err := c.fn(ctx); err != nil {
			results[name] = CheckResult{Status: StatusDown, Critical: c.critical, Error: err.Error()}
			if c.critical {
				overall = StatusDown
			} else if overall == StatusUp {
				overall = StatusDegraded
			}
			continue
		}
		results[name] = CheckResult{Status: StatusUp, Critical: c.critical}
	}

	return Report{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Checks:    results,
	}
}
