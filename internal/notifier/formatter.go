package notifier

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/colorstring"
	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

// Decimal places used for display.
const (
	NavPlaces   = 4
	MoneyPlaces = 0
)

const stampLayout = "01/02 15:04"

// Formatter renders tracker reports as terminal lines. Markup uses
// colorstring tags and is stripped when color is disabled.
type Formatter struct {
	Name  string
	color *colorstring.Colorize
}

// NewFormatter creates a formatter for the fund called name.
func NewFormatter(name string, color bool) *Formatter {
	return &Formatter{
		Name: name,
		color: &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color,
			Reset:   true,
		},
	}
}

// Number formats the absolute value of v with places decimals and thousands separators.
func Number(v decimal.Decimal, places int32) string {
	return group(v.Abs().StringFixed(places))
}

func group(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return s
	}
	out := sign + humanize.BigComma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// signed renders a delta as "+$1,234" or "-$1,234" in green or red. A zero
// delta takes the report direction.
func signed(v decimal.Decimal, places int32, positive bool, suffix string) string {
	up := v.Sign() > 0 || (v.IsZero() && positive)
	if up {
		return fmt.Sprintf("[green]+$%s%s[reset]", Number(v, places), suffix)
	}
	return fmt.Sprintf("[red]-$%s%s[reset]", Number(v, places), suffix)
}

func bold(s string) string { return "[bold]" + s + "[reset]" }

// Current renders an update line.
func (f *Formatter) Current(r *model.UpdateReport) string {
	var b strings.Builder
	b.WriteString(r.Time.Format(stampLayout))
	b.WriteString(" > ")

	nav := bold(Number(r.Nav, NavPlaces))
	fund := bold(Number(r.Fund, MoneyPlaces))
	stake := bold(Number(r.StakeValue, MoneyPlaces))

	if dl := r.Deltas; dl != nil {
		fmt.Fprintf(&b, "%s value: $%s (%s). ", f.Name, nav, signed(dl.Nav, NavPlaces, dl.Positive, ""))
		fmt.Fprintf(&b, "%s Fund: $%sK (%s). ", f.Name, fund, signed(dl.Fund, MoneyPlaces, dl.Positive, "K"))
		fmt.Fprintf(&b, "Stake value: $%s (%s).", stake, signed(dl.Stake, MoneyPlaces, dl.Positive, ""))
	} else {
		fmt.Fprintf(&b, "%s value: $%s.  %s Fund: $%sK.  Stake value: $%s.", f.Name, nav, f.Name, fund, stake)
	}
	return f.color.Color(b.String())
}

// Delta renders a "Change since" line. Elapsed time is measured from r.Since.
func (f *Formatter) Delta(r *model.DeltaReport) string {
	dl := r.Deltas
	elapsed := humanize.RelTime(r.Since, r.Time, "ago", "from now")
	line := fmt.Sprintf("%s > Change since %s (%s): %s value: %s.  %s Fund: %s.  Stake value: %s.",
		r.Time.Format(stampLayout),
		r.Baseline.Label(),
		bold(elapsed),
		f.Name, signed(dl.Nav, NavPlaces, dl.Positive, ""),
		f.Name, signed(dl.Fund, MoneyPlaces, dl.Positive, "K"),
		signed(dl.Stake, MoneyPlaces, dl.Positive, ""),
	)
	return f.color.Color(line)
}

// Banner renders the startup summary.
func (f *Formatter) Banner(stake decimal.Decimal, refresh, checkpoint time.Duration, since model.Baseline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n[green][bold]Starting %s monitoring.[reset]\n", f.Name)
	fmt.Fprintf(&b, "Stake size: %s %s.\n", bold(group(stake.String())), f.Name)
	fmt.Fprintf(&b, "Refresh %s value every: %s.\n", f.Name, bold(Interval(refresh)))
	fmt.Fprintf(&b, "Show changes since %s every: %s.", since.Label(), bold(Interval(checkpoint)))
	return f.color.Color(b.String())
}

// Interval renders a duration as "2 minutes" or "1 hour".
func Interval(d time.Duration) string {
	var t0 time.Time
	return strings.TrimSpace(humanize.RelTime(t0, t0.Add(d), "", ""))
}

// Saved renders the persisted record with its age and the stake value at its NAV.
func (f *Formatter) Saved(r *model.Record, stake decimal.Decimal, now time.Time) string {
	line := fmt.Sprintf("Last saved data (%s): %s value: $%s.  %s Fund: $%sK.  Stake value: $%s.",
		bold(humanize.RelTime(r.Time, now, "ago", "from now")),
		f.Name, bold(Number(r.Nav, NavPlaces)),
		f.Name, bold(Number(r.Fund, MoneyPlaces)),
		bold(Number(r.Nav.Mul(stake), MoneyPlaces)),
	)
	return f.color.Color(line)
}
