package store

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agrosight/agrosight/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func sampleResult(pipelineID, farmerID string, success bool) *models.PipelineResult {
	return &models.PipelineResult{
		Success:    success,
		PipelineID: pipelineID,
		Timestamp:  time.Date(2025, time.July, 10, 9, 30, 0, 0, time.UTC),
		FarmerID:   farmerID,
		Summary: &models.ResultSummary{
			SoilHealth:     "Good",
			YieldPotential: "Excellent",
			PestRisk:       "Low",
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := setupTestStore(t)

	result := sampleResult("farmer_pipeline_1", "farmer-1", true)
	if err := store.SaveResult(result); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	run, err := store.GetRun("farmer_pipeline_1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run == nil {
		t.Fatal("run not found")
	}
	if run.FarmerID != "farmer-1" || !run.Success {
		t.Errorf("run = %+v", run)
	}
	if run.Result == nil || run.Result.Summary.SoilHealth != "Good" {
		t.Errorf("stored result did not round-trip: %+v", run.Result)
	}
}

func TestGetRun_Unknown(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.GetRun("no-such-run")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run != nil {
		t.Errorf("run = %+v, want nil", run)
	}
}

func TestSaveResult_DuplicateIgnored(t *testing.T) {
	store := setupTestStore(t)

	result := sampleResult("farmer_pipeline_2", "farmer-1", true)
	if err := store.SaveResult(result); err != nil {
		t.Fatalf("first save: %v", err)
	}

	dup := sampleResult("farmer_pipeline_2", "farmer-1", false)
	if err := store.SaveResult(dup); err != nil {
		t.Fatalf("duplicate save: %v", err)
	}

	run, err := store.GetRun("farmer_pipeline_2")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !run.Success {
		t.Error("duplicate save overwrote the original run")
	}
}

func TestListRunsByFarmer(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 5; i++ {
		r := sampleResult(fmt.Sprintf("farmer_pipeline_%d", i), "farmer-1", true)
		if err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}
	if err := store.SaveResult(sampleResult("other_pipeline", "farmer-2", true)); err != nil {
		t.Fatalf("SaveResult other: %v", err)
	}

	runs, err := store.ListRunsByFarmer("farmer-1", 3)
	if err != nil {
		t.Fatalf("ListRunsByFarmer: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	for _, run := range runs {
		if run.FarmerID != "farmer-1" {
			t.Errorf("run %s belongs to %s", run.PipelineID, run.FarmerID)
		}
	}

	all, err := store.ListRunsByFarmer("farmer-1", 0)
	if err != nil {
		t.Fatalf("ListRunsByFarmer default limit: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("len(all) = %d, want 5", len(all))
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
