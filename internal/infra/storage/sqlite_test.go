package storage

import (
	"os"
	"testing"

	"kite_tap/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Storage {
	dbName := "test.db"
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&domain.Instrument{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		os.Remove(dbName)
	})

	return &Storage{db: db}
}

func TestUpsertAndGetInstrument(t *testing.T) {
	s := setupTestDB(t)

	inst := &domain.Instrument{
		Token:     291849,
		Symbol:    "GIFTNIFTY",
		Name:      "GIFT NIFTY",
		IsWatched: true,
	}

	// 1. Create
	if err := s.UpsertInstrument(inst); err != nil {
		t.Fatalf("UpsertInstrument failed: %v", err)
	}

	// 2. Get
	fetched, err := s.GetInstrument(291849)
	if err != nil {
		t.Fatalf("GetInstrument failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("fetched instrument is nil")
	}
	if fetched.Symbol != "GIFTNIFTY" {
		t.Errorf("expected symbol GIFTNIFTY, got %s", fetched.Symbol)
	}
}

func TestGetInstrument_NotFound(t *testing.T) {
	s := setupTestDB(t)

	fetched, err := s.GetInstrument(12345)
	if err != nil {
		t.Fatalf("GetInstrument failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestUpdateInstrument(t *testing.T) {
	s := setupTestDB(t)
	inst := &domain.Instrument{Token: 1, Symbol: "BEFORE"}
	s.UpsertInstrument(inst)

	// Update
	inst.Symbol = "AFTER"
	if err := s.UpsertInstrument(inst); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, _ := s.GetInstrument(1)
	if fetched.Symbol != "AFTER" {
		t.Errorf("expected symbol 'AFTER', got '%s'", fetched.Symbol)
	}
}

func TestDeleteInstrument(t *testing.T) {
	s := setupTestDB(t)
	s.UpsertInstrument(&domain.Instrument{Token: 99, Symbol: "DEL"})

	// Delete
	if err := s.DeleteInstrument(99); err != nil {
		t.Fatalf("DeleteInstrument failed: %v", err)
	}

	// Verify
	fetched, err := s.GetInstrument(99)
	if err != nil {
		t.Fatalf("GetInstrument after delete failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected instrument to be deleted, but found record")
	}
}

func TestSetWatched(t *testing.T) {
	s := setupTestDB(t)
	s.UpsertInstrument(&domain.Instrument{Token: 7, Symbol: "WATCH", IsWatched: false})

	if err := s.SetWatched(7, true); err != nil {
		t.Fatalf("SetWatched failed: %v", err)
	}

	fetched, _ := s.GetInstrument(7)
	if !fetched.IsWatched {
		t.Error("expected IsWatched to be true")
	}
}

func TestLabels(t *testing.T) {
	s := setupTestDB(t)
	s.UpsertInstrument(&domain.Instrument{Token: 291849, Symbol: "GIFTNIFTY"})
	s.UpsertInstrument(&domain.Instrument{Token: 256265, Symbol: "NIFTY 50"})

	labels, err := s.Labels()
	if err != nil {
		t.Fatalf("Labels failed: %v", err)
	}

	if labels[291849] != "GIFTNIFTY" {
		t.Errorf("expected GIFTNIFTY, got %s", labels[291849])
	}
	if len(labels) != 2 {
		t.Errorf("expected 2 labels, got %d", len(labels))
	}
}
