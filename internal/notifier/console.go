package notifier

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

// Console writes report lines to a terminal.
type Console struct {
	Out    io.Writer
	Format *Formatter
}

// NewConsole creates a console sink.
func NewConsole(out io.Writer, name string, color bool) *Console {
	return &Console{Out: out, Format: NewFormatter(name, color)}
}

// Current prints an update line.
func (c *Console) Current(r *model.UpdateReport) {
	fmt.Fprintln(c.Out, c.Format.Current(r))
}

// Delta prints a change-since line. A nil report prints nothing.
func (c *Console) Delta(r *model.DeltaReport) {
	if r == nil {
		return
	}
	fmt.Fprintln(c.Out, c.Format.Delta(r))
}

// Warn prints an uncolored warning line.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

// Banner prints the startup summary.
func (c *Console) Banner(stake decimal.Decimal, refresh, checkpoint time.Duration, since model.Baseline) {
	fmt.Fprintln(c.Out, c.Format.Banner(stake, refresh, checkpoint, since))
}

// Saved prints the persisted record.
func (c *Console) Saved(r *model.Record, stake decimal.Decimal) {
	fmt.Fprintln(c.Out, c.Format.Saved(r, stake, time.Now()))
}
