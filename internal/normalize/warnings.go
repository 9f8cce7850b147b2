package normalize

import "fmt"

// DefaultMaxWarnings caps how many warnings a run retains. Past the cap
// only the counter advances, so a pathological workbook cannot balloon
// run results.
const DefaultMaxWarnings = 100

// Warning records a cell that failed coercion.
type Warning struct {
	Sheet string `json:"sheet"`
	Row   int    `json:"row"`
	Field string `json:"field"`
	Raw   string `json:"raw"`
	Msg   string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s!%d %s (%q): %s", w.Sheet, w.Row, w.Field, w.Raw, w.Msg)
}

// Collector accumulates warnings up to a cap.
type Collector struct {
	max      int
	warnings []Warning
	total    int
}

func NewCollector(max int) *Collector {
	if max <= 0 {
		max = DefaultMaxWarnings
	}
	return &Collector{max: max}
}

func (c *Collector) Add(sheet string, row int, field, raw, msg string) {
	c.total++
	if len(c.warnings) >= c.max {
		return
	}
	c.warnings = append(c.warnings, Warning{Sheet: sheet, Row: row, Field: field, Raw: raw, Msg: msg})
}

// Warnings returns the retained warnings.
func (c *Collector) Warnings() []Warning { return c.warnings }

// Total counts every warning seen, including dropped ones.
func (c *Collector) Total() int { return c.total }

// Truncated reports how many warnings were dropped by the cap.
func (c *Collector) Truncated() int { return c.total - len(c.warnings) }
