package sim

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStorePersistsBatch(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	cfg := batchConfig(4, 11)
	cfg.Store = store
	r, err := NewRunner(cfg)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	recs, err := store.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("stored %d records, want 4", len(recs))
	}
	seen := make(map[string]bool)
	for _, rec := range recs {
		if rec.ID == "" {
			t.Errorf("record missing ID: %+v", rec)
		}
		if seen[rec.ID] {
			t.Errorf("duplicate record ID %s", rec.ID)
		}
		seen[rec.ID] = true
		if rec.ChallengerStrategy != "random" || rec.DefenderStrategy != "random" {
			t.Errorf("record names strategies %q/%q, want random/random", rec.ChallengerStrategy, rec.DefenderStrategy)
		}
		if rec.ChallengerTechniques == "" || rec.DefenderTechniques == "" {
			t.Errorf("record missing drafted techniques: %+v", rec)
		}
	}
}
