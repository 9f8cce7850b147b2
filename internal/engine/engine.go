// Package engine orchestrates a reconciliation run: normalize sheets in
// chunks, net returns against forward rows, prepare the physical count,
// prove ending inventory and fold the derived reports. A Run is a fresh
// context object; nothing is shared between runs.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hmshaban/jard-backend/internal/aggregate"
	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/index"
	"github.com/hmshaban/jard-backend/internal/match"
	"github.com/hmshaban/jard-backend/internal/normalize"
	"github.com/hmshaban/jard-backend/internal/reconcile"
	"github.com/hmshaban/jard-backend/pkg/logger"
)

// DefaultChunkSize is how many rows each pipeline step handles between
// progress events and cancellation checks.
const DefaultChunkSize = 1000

// DefaultTimeout bounds a whole run.
const DefaultTimeout = 15 * time.Minute

// Options configure a run. Zero values fall back to defaults.
type Options struct {
	ChunkSize       int
	Timeout         time.Duration
	Today           time.Time
	SalesWindowDays int
	Thresholds      reconcile.Thresholds
	MaxWarnings     int
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Today.IsZero() {
		o.Today = time.Now().UTC()
	}
	if o.SalesWindowDays <= 0 {
		o.SalesWindowDays = 90
	}
	if o.Thresholds == (reconcile.Thresholds{}) {
		o.Thresholds = reconcile.DefaultThresholds()
	}
	if o.MaxWarnings <= 0 {
		o.MaxWarnings = normalize.DefaultMaxWarnings
	}
	return o
}

// Input is the raw workbook content keyed by canonical fields. Optional
// sheets may be empty.
type Input struct {
	Purchases normalize.RawSheet
	Sales     normalize.RawSheet
	Physical  normalize.RawSheet
	Balances  normalize.RawSheet
}

func (in Input) totalRows() int {
	return len(in.Purchases.Rows) + len(in.Sales.Rows) + len(in.Physical.Rows) + len(in.Balances.Rows)
}

// Stats summarizes a completed run.
type Stats struct {
	TotalRows         int           `json:"total_rows"`
	PurchaseRows      int           `json:"purchase_rows"`
	SaleRows          int           `json:"sale_rows"`
	CountRows         int           `json:"count_rows"`
	BalanceRows       int           `json:"balance_rows"`
	WarningCount      int           `json:"warning_count"`
	WarningsTruncated int           `json:"warnings_truncated"`
	Elapsed           time.Duration `json:"elapsed"`
}

// Result carries every derived list of a completed run.
type Result struct {
	PurchaseMatches []match.Record
	SaleMatches     []match.Record
	NetPurchases    []*match.NetRow
	NetSales        []*match.NetRow

	PhysicalCounted     []domain.CountRow
	PhysicalAdjustments []domain.CountRow

	EndingInventory []*reconcile.EndingRow
	EndingUnproven  []*reconcile.EndingRow
	Items           []reconcile.ItemSummary

	Excess           []aggregate.ExcessRow
	SalesCost        []aggregate.CostedSale
	Profitability    []aggregate.ProfitRow
	ABC              []aggregate.ABCRow
	Turnover         []aggregate.TurnoverRow
	Replenishment    []aggregate.ReplenishmentRow
	SupplierPayables []aggregate.PayablesRow

	Warnings []normalize.Warning
	Stats    Stats
}

// Run executes one reconciliation. Create with NewRun, drive with
// Execute, observe through Progress and stop through Cancel.
type Run struct {
	id   string
	opts Options
	log  zerolog.Logger

	progress   chan Progress
	started    time.Time
	cancel     context.CancelFunc
	cancelled  atomic.Bool
	cancelOnce sync.Once
	cancelMu   sync.Mutex
}

func NewRun(opts Options) *Run {
	id := uuid.NewString()
	return &Run{
		id:       id,
		opts:     opts.withDefaults(),
		log:      logger.Log.With().Str("run_id", id).Logger(),
		progress: make(chan Progress, progressBufferSize),
	}
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Progress returns the event channel. It is closed when Execute returns.
func (r *Run) Progress() <-chan Progress { return r.progress }

// Cancel stops the run. Safe to call any number of times, before or
// after completion.
func (r *Run) Cancel() {
	r.cancelOnce.Do(func() {
		r.cancelled.Store(true)
		r.cancelMu.Lock()
		if r.cancel != nil {
			r.cancel()
		}
		r.cancelMu.Unlock()
	})
}

// checkpoint is called at chunk boundaries; it translates context state
// into the run error taxonomy.
func (r *Run) checkpoint(ctx context.Context, stage Stage) error {
	select {
	case <-ctx.Done():
	default:
		return nil
	}
	if r.cancelled.Load() {
		return &CancelledError{Stage: stage}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &TimeoutError{Stage: stage, Limit: r.opts.Timeout}
	}
	return &CancelledError{Stage: stage}
}

// Execute runs the pipeline to completion. It returns exactly one of a
// result or an error from the run taxonomy.
func (r *Run) Execute(ctx context.Context, input Input) (result *Result, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	r.cancelMu.Lock()
	r.cancel = cancel
	r.cancelMu.Unlock()
	if r.cancelled.Load() {
		cancel()
	}

	r.started = time.Now()
	defer close(r.progress)
	defer cancel()
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Msg("run panicked")
			result = nil
			err = &UnexpectedError{Stage: StageDone, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	r.log.Info().
		Int("total_rows", input.totalRows()).
		Int("chunk_size", r.opts.ChunkSize).
		Dur("timeout", r.opts.Timeout).
		Msg("run started")

	warnings := normalize.NewCollector(r.opts.MaxWarnings)
	norm := normalize.New(warnings)

	// stage 1: normalize every sheet chunk by chunk
	var (
		purchases, purchaseReturns []domain.TransactionRow
		sales, saleReturns         []domain.TransactionRow
		counts                     []domain.CountRow
		balances                   []domain.BalanceRow
	)
	normTotal := input.totalRows()
	normDone := 0

	err = r.eachChunk(ctx, StageNormalize, len(input.Purchases.Rows), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := norm.TransactionRow(input.Purchases.Name, i+1, input.Purchases.Rows[i], false)
			if row.OperationType.IsReturn() {
				purchaseReturns = append(purchaseReturns, row)
			} else {
				purchases = append(purchases, row)
			}
		}
		normDone = hi
		r.emit(StageNormalize, normDone, normTotal)
	})
	if err != nil {
		return nil, err
	}
	base := len(input.Purchases.Rows)
	err = r.eachChunk(ctx, StageNormalize, len(input.Sales.Rows), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := norm.TransactionRow(input.Sales.Name, i+1, input.Sales.Rows[i], true)
			if row.OperationType.IsReturn() {
				saleReturns = append(saleReturns, row)
			} else {
				sales = append(sales, row)
			}
		}
		r.emit(StageNormalize, base+hi, normTotal)
	})
	if err != nil {
		return nil, err
	}
	base += len(input.Sales.Rows)
	err = r.eachChunk(ctx, StageNormalize, len(input.Physical.Rows), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			counts = append(counts, norm.CountRow(input.Physical.Name, i+1, input.Physical.Rows[i]))
		}
		r.emit(StageNormalize, base+hi, normTotal)
	})
	if err != nil {
		return nil, err
	}
	base += len(input.Physical.Rows)
	err = r.eachChunk(ctx, StageNormalize, len(input.Balances.Rows), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			balances = append(balances, norm.BalanceRow(input.Balances.Name, i+1, input.Balances.Rows[i]))
		}
		r.emit(StageNormalize, base+hi, normTotal)
	})
	if err != nil {
		return nil, err
	}

	// stage 2: net purchase returns against purchases
	netPurchases, purchaseMatches, err := r.netStage(ctx, StageMatchPurchases, purchases, purchaseReturns)
	if err != nil {
		return nil, err
	}

	// stage 3: net sale returns against sales
	netSales, saleMatches, err := r.netStage(ctx, StageMatchSales, sales, saleReturns)
	if err != nil {
		return nil, err
	}

	// stage 4: physical count preparation
	if err := r.checkpoint(ctx, StagePhysical); err != nil {
		return nil, err
	}
	prepared := reconcile.PreparePhysical(counts, r.opts.Today, r.opts.Thresholds)
	r.emit(StagePhysical, len(prepared.Counted), len(prepared.Counted))

	// stage 5: excess verdicts feed the ending-inventory build
	if err := r.checkpoint(ctx, StageEnding); err != nil {
		return nil, err
	}
	excess := aggregate.ExcessInventory(prepared.Counted, netSales, r.opts.Today, r.opts.SalesWindowDays)
	movement := make(map[string]reconcile.MovementInfo, len(excess))
	for _, e := range excess {
		movement[e.MaterialCode] = reconcile.MovementInfo{
			Status:     e.Status,
			SoldQty:    e.SoldQty,
			IdealQty:   e.IdealQty,
			SurplusQty: e.SurplusQty,
			NeedQty:    e.NeedQty,
		}
	}
	ending, unproven := reconcile.BuildEndingInventory(prepared.Counted, netPurchases, reconcile.EndingOptions{
		Today:      r.opts.Today,
		Thresholds: r.opts.Thresholds,
		Movement:   movement,
	})
	r.emit(StageEnding, len(ending)+len(unproven), len(ending)+len(unproven))

	// stage 6: derived reports
	if err := r.checkpoint(ctx, StageAggregate); err != nil {
		return nil, err
	}
	allTransactions := make([]domain.TransactionRow, 0,
		len(purchases)+len(purchaseReturns)+len(sales)+len(saleReturns))
	allTransactions = append(allTransactions, purchases...)
	allTransactions = append(allTransactions, purchaseReturns...)
	allTransactions = append(allTransactions, sales...)
	allTransactions = append(allTransactions, saleReturns...)

	costed := aggregate.SalesCost(netPurchases, netSales)
	profitability := aggregate.ItemProfitability(costed)

	result = &Result{
		PurchaseMatches: purchaseMatches,
		SaleMatches:     saleMatches,
		NetPurchases:    netPurchases,
		NetSales:        netSales,

		PhysicalCounted:     prepared.Counted,
		PhysicalAdjustments: prepared.Adjustments,

		EndingInventory: ending,
		EndingUnproven:  unproven,
		Items:           reconcile.ReconcileItems(allTransactions, prepared.Counted, r.opts.Today, r.opts.Thresholds),

		Excess:           excess,
		SalesCost:        costed,
		Profitability:    profitability,
		ABC:              aggregate.ABCClassification(profitability),
		Turnover:         aggregate.Turnover(prepared.Counted, excess, r.opts.SalesWindowDays),
		Replenishment:    aggregate.ReplenishmentGap(prepared.Counted, netSales, netPurchases, r.opts.Today, r.opts.SalesWindowDays),
		SupplierPayables: aggregate.SupplierPayables(balances, append(append([]*reconcile.EndingRow{}, ending...), unproven...)),

		Warnings: warnings.Warnings(),
		Stats: Stats{
			TotalRows:         input.totalRows(),
			PurchaseRows:      len(purchases) + len(purchaseReturns),
			SaleRows:          len(sales) + len(saleReturns),
			CountRows:         len(counts),
			BalanceRows:       len(balances),
			WarningCount:      warnings.Total(),
			WarningsTruncated: warnings.Truncated(),
			Elapsed:           time.Since(r.started),
		},
	}

	r.emit(StageDone, normTotal, normTotal)
	r.log.Info().
		Dur("elapsed", result.Stats.Elapsed).
		Int("warnings", result.Stats.WarningCount).
		Int("net_purchases", len(result.NetPurchases)).
		Int("net_sales", len(result.NetSales)).
		Int("ending_rows", len(result.EndingInventory)).
		Msg("run completed")
	return result, nil
}

// netStage indexes forward rows and matches returns, both chunked.
func (r *Run) netStage(ctx context.Context, stage Stage, forward, returns []domain.TransactionRow) ([]*match.NetRow, []match.Record, error) {
	ix := index.New()
	total := len(forward) + len(returns)

	err := r.eachChunk(ctx, stage, len(forward), func(lo, hi int) {
		ix.AddChunk(forward[lo:hi])
		r.emit(stage, hi, total)
	})
	if err != nil {
		return nil, nil, err
	}

	m := match.New(ix)
	err = r.eachChunk(ctx, stage, len(returns), func(lo, hi int) {
		m.ProcessChunk(returns[lo:hi])
		r.emit(stage, len(forward)+hi, total)
	})
	if err != nil {
		return nil, nil, err
	}

	net := match.BuildNet(ix, m.Orphans())
	r.log.Debug().
		Str("stage", string(stage)).
		Int("forward", len(forward)).
		Int("returns", len(returns)).
		Int("net", len(net)).
		Int("orphans", len(m.Orphans())).
		Msg("netting finished")
	return net, m.Records(), nil
}

// eachChunk walks [0,n) in chunk-size steps, checking for cancellation
// before each chunk.
func (r *Run) eachChunk(ctx context.Context, stage Stage, n int, fn func(lo, hi int)) error {
	for lo := 0; lo < n; lo += r.opts.ChunkSize {
		if err := r.checkpoint(ctx, stage); err != nil {
			return err
		}
		hi := lo + r.opts.ChunkSize
		if hi > n {
			hi = n
		}
		fn(lo, hi)
	}
	return r.checkpoint(ctx, stage)
}
