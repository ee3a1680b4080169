package results

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danielpatrickdp/superego-harness/internal/experiment"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleHistory() experiment.History {
	return experiment.History{
		{Iteration: 1, Answer: 3, Correct: false, Karma: -2, ErrorRate: 1.0, WindowedErrorRate: 1.0},
		{Iteration: 2, Answer: 2, Correct: true, Karma: 0, ErrorRate: 0.5, WindowedErrorRate: 0.5},
		{Iteration: 3, Answer: 2, Correct: true, Karma: 2, ErrorRate: 1.0 / 3.0, WindowedErrorRate: 1.0 / 3.0},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := tempStore(t)

	config := experiment.DefaultConfig()
	config.Seed = 42
	config.NumIterations = 3
	history := sampleHistory()

	runID, err := store.SaveRun(config, 42, history)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a non-empty run ID")
	}

	rec, err := store.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if rec.QuestionA != config.Question.A || rec.QuestionB != config.Question.B {
		t.Fatalf("question = %d+%d, want %d+%d", rec.QuestionA, rec.QuestionB, config.Question.A, config.Question.B)
	}
	if rec.Seed != 42 || rec.NumTrials != 3 {
		t.Fatalf("seed/trials = %d/%d, want 42/3", rec.Seed, rec.NumTrials)
	}
	if rec.FinalKarma != 2 || rec.FinalErrorRate != 1.0/3.0 {
		t.Fatalf("finals = %v/%v, want 2/%v", rec.FinalKarma, rec.FinalErrorRate, 1.0/3.0)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected a parsed creation timestamp")
	}

	restored, err := rec.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if !reflect.DeepEqual(restored, config) {
		t.Fatalf("restored config %+v differs from saved %+v", restored, config)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	store := tempStore(t)

	history := sampleHistory()
	runID, err := store.SaveRun(experiment.DefaultConfig(), 7, history)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetHistory(runID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if !reflect.DeepEqual(got, history) {
		t.Fatalf("reloaded history differs:\n got %+v\nwant %+v", got, history)
	}
}

func TestEmptyHistoryFinals(t *testing.T) {
	store := tempStore(t)

	config := experiment.DefaultConfig()
	config.Karma.Initial = -5

	runID, err := store.SaveRun(config, 1, nil)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	rec, err := store.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if rec.NumTrials != 0 {
		t.Fatalf("trials = %d, want 0", rec.NumTrials)
	}
	if rec.FinalKarma != -5 || rec.FinalErrorRate != 1.0 || rec.FinalWindowedErrorRate != 1.0 {
		t.Fatalf("finals = %v/%v/%v, want -5/1/1",
			rec.FinalKarma, rec.FinalErrorRate, rec.FinalWindowedErrorRate)
	}

	got, err := store.GetHistory(runID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %d records", len(got))
	}
}

func TestListRuns(t *testing.T) {
	store := tempStore(t)

	config := experiment.DefaultConfig()
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.SaveRun(config, int64(i+1), sampleHistory())
		if err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	seen := map[string]bool{ids[0]: true, ids[1]: true, ids[2]: true}
	for _, r := range runs {
		if !seen[r.RunID] {
			t.Fatalf("unexpected run ID %s", r.RunID)
		}
	}
	if runs[0].CreatedAt.Before(runs[1].CreatedAt) {
		t.Fatalf("runs not ordered newest first: %v before %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestGetRunMissing(t *testing.T) {
	store := tempStore(t)
	if _, err := store.GetRun("no-such-run"); err == nil {
		t.Fatal("expected an error for an unknown run ID")
	}
}
