package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	now := time.Unix(1760788800, 0)
	first := &model.UpdateReport{
		Time: now, Nav: decimal.RequireFromString("2.0"),
		Fund: decimal.NewFromInt(30000), StakeValue: decimal.NewFromInt(20000),
	}
	second := &model.UpdateReport{
		Time: now.Add(time.Minute), Nav: decimal.RequireFromString("2.123456789"),
		Fund: decimal.NewFromInt(30100), StakeValue: decimal.RequireFromString("21234.56789"),
		Deltas: &model.Deltas{Nav: decimal.RequireFromString("0.123456789"), Positive: true},
	}
	for _, u := range []*model.UpdateReport{first, second} {
		if err := r.RecordUpdate(u); err != nil {
			t.Fatalf("record update: %v", err)
		}
	}
	if err := r.RecordDelta(&model.DeltaReport{Time: now, Since: now.Add(-time.Hour), Baseline: model.BaselineSaved}); err != nil {
		t.Fatalf("record delta: %v", err)
	}

	var count, withDelta int
	if err := r.db.QueryRow(`SELECT COUNT(*), COUNT(nav_delta) FROM observations`).Scan(&count, &withDelta); err != nil {
		t.Fatal(err)
	}
	if count != 2 || withDelta != 1 {
		t.Errorf("observations = %d (with delta %d), want 2 (1)", count, withDelta)
	}

	var nav string
	if err := r.db.QueryRow(`SELECT nav FROM observations ORDER BY id DESC LIMIT 1`).Scan(&nav); err != nil {
		t.Fatal(err)
	}
	if nav != "2.123456789" {
		t.Errorf("nav = %q, want exact decimal text", nav)
	}

	var baseline string
	if err := r.db.QueryRow(`SELECT baseline FROM delta_reports`).Scan(&baseline); err != nil {
		t.Fatal(err)
	}
	if baseline != "SAVED" {
		t.Errorf("baseline = %q", baseline)
	}
}
