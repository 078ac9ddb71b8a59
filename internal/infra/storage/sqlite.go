package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"kite_tap/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists instrument metadata. Ticks are never written here:
// the feed only speaks numeric tokens, and this registry is what lets
// the renderer print a symbol next to one.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.Instrument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "KiteTap", "data", "instruments.db"), nil
}

// UpsertInstrument creates or updates instrument metadata
func (s *Storage) UpsertInstrument(inst *domain.Instrument) error {
	return s.db.Save(inst).Error
}

// GetInstrument retrieves instrument metadata by token
func (s *Storage) GetInstrument(token uint32) (*domain.Instrument, error) {
	var inst domain.Instrument
	err := s.db.First(&inst, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &inst, err
}

// GetAllInstruments retrieves all known instruments
func (s *Storage) GetAllInstruments() ([]domain.Instrument, error) {
	var insts []domain.Instrument
	err := s.db.Find(&insts).Error
	return insts, err
}

// SetWatched flips the live-subscription flag for an instrument
func (s *Storage) SetWatched(token uint32, watched bool) error {
	var inst domain.Instrument
	if err := s.db.First(&inst, "token = ?", token).Error; err != nil {
		return err
	}

	inst.IsWatched = watched
	return s.db.Save(&inst).Error
}

// DeleteInstrument removes an instrument from the registry
func (s *Storage) DeleteInstrument(token uint32) error {
	return s.db.Where("token = ?", token).Delete(&domain.Instrument{}).Error
}

// Labels returns a token -> symbol map for tick rendering
func (s *Storage) Labels() (map[uint32]string, error) {
	insts, err := s.GetAllInstruments()
	if err != nil {
		return nil, err
	}

	labels := make(map[uint32]string, len(insts))
	for _, inst := range insts {
		labels[inst.Token] = inst.Symbol
	}
	return labels, nil
}
