package engine

import "time"

// Stage identifies a pipeline phase in progress events and errors.
type Stage string

const (
	StageNormalize      Stage = "normalize"
	StageMatchPurchases Stage = "match_purchases"
	StageMatchSales     Stage = "match_sales"
	StagePhysical       Stage = "physical_count"
	StageEnding         Stage = "ending_inventory"
	StageAggregate      Stage = "aggregate"
	StageDone           Stage = "done"
)

// Progress is emitted at chunk boundaries.
type Progress struct {
	Stage     Stage         `json:"stage"`
	Processed int           `json:"processed"`
	Total     int           `json:"total"`
	Percent   float64       `json:"percent"`
	Elapsed   time.Duration `json:"elapsed"`
}

// progressBufferSize bounds the progress channel; the producer never
// blocks on a slow consumer.
const progressBufferSize = 64

// emit publishes a progress event, dropping the oldest buffered event
// when the consumer lags.
func (r *Run) emit(stage Stage, processed, total int) {
	percent := 100.0
	if total > 0 {
		percent = float64(processed) / float64(total) * 100
	}
	p := Progress{
		Stage:     stage,
		Processed: processed,
		Total:     total,
		Percent:   percent,
		Elapsed:   time.Since(r.started),
	}

	select {
	case r.progress <- p:
		return
	default:
	}
	select {
	case <-r.progress:
	default:
	}
	select {
	case r.progress <- p:
	default:
	}
}
