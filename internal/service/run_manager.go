// Package service coordinates reconciliation runs: it owns the live run
// registry, streams engine progress into run state, and serves rendered
// reports through the cache.
package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/cache"
	"github.com/hmshaban/jard-backend/internal/config"
	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/reconcile"
	"github.com/hmshaban/jard-backend/internal/report"
	"github.com/hmshaban/jard-backend/internal/store"
	"github.com/hmshaban/jard-backend/internal/workbook"
)

var (
	ErrRunNotFound    = errors.New("run not found")
	ErrRunNotFinished = errors.New("run has not completed")
	ErrUnknownReport  = errors.New("unknown report")
)

// RunState is the externally visible status of a run.
type RunState struct {
	ID           string           `json:"id"`
	Status       domain.RunStatus `json:"status"`
	Stage        engine.Stage     `json:"stage"`
	Processed    int              `json:"processed"`
	Total        int              `json:"total"`
	Percent      float64          `json:"percent"`
	SourceFile   string           `json:"source_file"`
	WarningCount int              `json:"warning_count"`
	Error        string           `json:"error,omitempty"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
}

type managedRun struct {
	mu     sync.RWMutex
	run    *engine.Run
	state  RunState
	result *engine.Result
	tables map[string]report.Table
}

// RunManager starts and tracks reconciliation runs.
type RunManager struct {
	mu      sync.RWMutex
	runs    map[string]*managedRun
	cfg     *config.Config
	store   *store.RunStore
	reports cache.ReportCache
}

// NewRunManager wires the manager. The store may be nil when the
// database is disabled; the cache falls back to a noop implementation.
func NewRunManager(cfg *config.Config, runStore *store.RunStore, reports cache.ReportCache) *RunManager {
	if reports == nil {
		reports = cache.NewNoopReportCache()
	}
	return &RunManager{
		runs:    make(map[string]*managedRun),
		cfg:     cfg,
		store:   runStore,
		reports: reports,
	}
}

func (m *RunManager) engineOptions() engine.Options {
	ec := m.cfg.Engine

	th := reconcile.DefaultThresholds()
	if ec.NewItemAgeDays > 0 {
		th.NewItemAgeDays = ec.NewItemAgeDays
	}
	if tol, err := decimal.NewFromString(ec.QuantityTolerance); err == nil && tol.IsPositive() {
		th.Tolerance = tol
	}

	return engine.Options{
		ChunkSize:       ec.ChunkSize,
		Timeout:         ec.Timeout(),
		SalesWindowDays: ec.SalesWindowDays,
		MaxWarnings:     ec.MaxWarnings,
		Thresholds:      th,
	}
}

// StartRun launches a reconciliation in the background and returns its
// run ID immediately.
func (m *RunManager) StartRun(ctx context.Context, input engine.Input, sourceFile string) (string, error) {
	run := engine.NewRun(m.engineOptions())

	mr := &managedRun{
		run: run,
		state: RunState{
			ID:         run.ID(),
			Status:     domain.RunPending,
			SourceFile: sourceFile,
			StartedAt:  time.Now().UTC(),
		},
	}

	m.mu.Lock()
	m.runs[run.ID()] = mr
	m.mu.Unlock()

	if m.store != nil {
		record := &store.RunRecord{
			ID:         run.ID(),
			Status:     string(domain.RunPending),
			SourceFile: sourceFile,
			StartedAt:  mr.state.StartedAt,
		}
		if err := m.store.CreateRun(ctx, record); err != nil {
			log.Warn().Err(err).Str("run_id", run.ID()).Msg("run store: create failed")
		}
	}

	go m.consumeProgress(mr)
	go m.execute(mr, input)

	return run.ID(), nil
}

func (m *RunManager) consumeProgress(mr *managedRun) {
	for p := range mr.run.Progress() {
		mr.mu.Lock()
		// buffered events may drain after the run went terminal
		if mr.state.Status != domain.RunPending && mr.state.Status != domain.RunProcessing {
			mr.mu.Unlock()
			continue
		}
		mr.state.Status = domain.RunProcessing
		mr.state.Stage = p.Stage
		mr.state.Processed = p.Processed
		mr.state.Total = p.Total
		mr.state.Percent = p.Percent
		mr.mu.Unlock()

		if m.store != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err := m.store.UpdateProgress(ctx, mr.run.ID(), string(p.Stage), int64(p.Processed), int64(p.Total))
			cancel()
			if err != nil {
				log.Warn().Err(err).Str("run_id", mr.run.ID()).Msg("run store: progress update failed")
			}
		}
	}
}

func (m *RunManager) execute(mr *managedRun, input engine.Input) {
	result, err := mr.run.Execute(context.Background(), input)

	now := time.Now().UTC()
	mr.mu.Lock()
	mr.state.CompletedAt = &now
	switch {
	case err == nil:
		mr.state.Status = domain.RunCompleted
		mr.state.Stage = engine.StageDone
		mr.state.Percent = 100
		mr.state.WarningCount = result.Stats.WarningCount
		mr.result = result
	case isCancelled(err):
		mr.state.Status = domain.RunCancelled
		mr.state.Error = err.Error()
	default:
		mr.state.Status = domain.RunFailed
		mr.state.Error = err.Error()
	}
	status := mr.state.Status
	errMsg := mr.state.Error
	warnings := mr.state.WarningCount
	mr.mu.Unlock()

	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.store.FinishRun(ctx, mr.run.ID(), string(status), errMsg, warnings); err != nil {
			log.Warn().Err(err).Str("run_id", mr.run.ID()).Msg("run store: finish failed")
		}
	}
}

func isCancelled(err error) bool {
	var cancelled *engine.CancelledError
	return errors.As(err, &cancelled)
}

func (m *RunManager) get(id string) (*managedRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mr, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return mr, nil
}

// State returns the current status of a run.
func (m *RunManager) State(id string) (RunState, error) {
	mr, err := m.get(id)
	if err != nil {
		return RunState{}, err
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.state, nil
}

// States returns every tracked run, newest first.
func (m *RunManager) States() []RunState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	states := make([]RunState, 0, len(m.runs))
	for _, mr := range m.runs {
		mr.mu.RLock()
		states = append(states, mr.state)
		mr.mu.RUnlock()
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].StartedAt.After(states[j].StartedAt)
	})
	return states
}

// Cancel requests a cooperative stop of a run.
func (m *RunManager) Cancel(id string) error {
	mr, err := m.get(id)
	if err != nil {
		return err
	}
	mr.run.Cancel()
	return nil
}

// Result returns the full result of a completed run.
func (m *RunManager) Result(id string) (*engine.Result, error) {
	mr, err := m.get(id)
	if err != nil {
		return nil, err
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	if mr.result == nil {
		return nil, ErrRunNotFinished
	}
	return mr.result, nil
}

// ReportTable renders one report table for a completed run, serving
// from cache when possible.
func (m *RunManager) ReportTable(ctx context.Context, id, name string) (report.Table, error) {
	if !validReportName(name) {
		return report.Table{}, ErrUnknownReport
	}

	if table, ok, err := m.reports.GetTable(ctx, id, name); err == nil && ok {
		return *table, nil
	} else if err != nil {
		log.Warn().Err(err).Str("run_id", id).Str("report", name).Msg("report cache: get failed")
	}

	tables, err := m.tables(id)
	if err != nil {
		return report.Table{}, err
	}

	table := tables[name]
	if err := m.reports.SetTable(ctx, id, table); err != nil {
		log.Warn().Err(err).Str("run_id", id).Str("report", name).Msg("report cache: set failed")
	}
	return table, nil
}

// tables builds (once) and returns every rendered table of a run.
func (m *RunManager) tables(id string) (map[string]report.Table, error) {
	mr, err := m.get(id)
	if err != nil {
		return nil, err
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()
	if mr.result == nil {
		return nil, ErrRunNotFinished
	}
	if mr.tables == nil {
		mr.tables = report.BuildAll(mr.result)
	}
	return mr.tables, nil
}

// Export streams the full report workbook of a completed run.
func (m *RunManager) Export(id string, w io.Writer) error {
	tables, err := m.tables(id)
	if err != nil {
		return err
	}
	return workbook.Export(w, tables)
}

func validReportName(name string) bool {
	for _, n := range report.Names() {
		if n == name {
			return true
		}
	}
	return false
}
