package resultstore

import (
	"path/filepath"
	"testing"
)

func openTestRegistry(t *testing.T) *RunRegistry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	reg, err := OpenRunRegistry(path)
	if err != nil {
		t.Fatalf("OpenRunRegistry: %v", err)
	}
	t.Cleanup(func() { reg.Close() })
	return reg
}

func TestBeginAndFinishRun(t *testing.T) {
	reg := openTestRegistry(t)

	runID, err := reg.BeginRun("breakout-v1")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run ID")
	}

	rec, err := reg.Get(runID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != "running" || rec.StrategyName != "breakout-v1" {
		t.Errorf("unexpected record after begin: %+v", rec)
	}

	if err := reg.FinishRun(runID, 5, 12, 3.25); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	rec, err = reg.Get(runID)
	if err != nil {
		t.Fatalf("Get after finish: %v", err)
	}
	if rec.Status != "complete" || rec.TotalDays != 5 || rec.TotalTrades != 12 || rec.FinishedAt == nil {
		t.Errorf("unexpected record after finish: %+v", rec)
	}
}

func TestFailRun(t *testing.T) {
	reg := openTestRegistry(t)
	runID, err := reg.BeginRun("strat")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := reg.FailRun(runID); err != nil {
		t.Fatalf("FailRun: %v", err)
	}
	rec, err := reg.Get(runID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != "failed" {
		t.Errorf("expected failed status, got %s", rec.Status)
	}
}

func TestListReturnsEveryRun(t *testing.T) {
	reg := openTestRegistry(t)
	first, _ := reg.BeginRun("strat-a")
	second, _ := reg.BeginRun("strat-b")

	runs, err := reg.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	ids := map[string]bool{first: true, second: true}
	for _, r := range runs {
		if !ids[r.RunID] {
			t.Errorf("unexpected run id %s", r.RunID)
		}
	}
}
