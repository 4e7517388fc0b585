// Package local implements the config store on an embedded SQLite
// database via GORM (pure-Go driver). Intended for development and
// single-box deployments where the hosted REST backend is overkill;
// it honors the same Store contract, including last-write-wins upserts.
package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/store"
)

// Store persists routing records and audit logs in SQLite.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path, applies PRAGMAs, and
// migrates the schema.
func Open(path string) (*Store, error) {
	// Fail early if the parent directory does not exist (instead of a
	// cryptic sqlite "out of memory (14)").
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(4)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.AutoMigrate(&domain.RoutingEntry{}, &logRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// logRecord adds an autoincrement key to LogEntry; the append-only log
// table needs one locally, while the REST backend manages its own.
type logRecord struct {
	ID uint `gorm:"primaryKey"`
	domain.LogEntry
}

func (logRecord) TableName() string { return "logs" }

// FetchAll returns every persisted routing record.
func (s *Store) FetchAll(ctx context.Context) ([]domain.RoutingEntry, error) {
	var entries []domain.RoutingEntry
	if err := s.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchLatest returns the most recently created routing record.
func (s *Store) FetchLatest(ctx context.Context) (domain.RoutingEntry, error) {
	var entry domain.RoutingEntry
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoutingEntry{}, store.ErrNotFound
	}
	if err != nil {
		return domain.RoutingEntry{}, err
	}
	return entry, nil
}

// Upsert writes a routing record, replacing the destination for an
// already-configured community.
func (s *Store) Upsert(ctx context.Context, entry domain.RoutingEntry) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "server_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id"}),
	}).Create(&entry).Error
}

// Delete removes the routing record for a community.
func (s *Store) Delete(ctx context.Context, communityID string) error {
	return s.db.WithContext(ctx).
		Where("server_id = ?", communityID).
		Delete(&domain.RoutingEntry{}).Error
}

// AppendLog appends an audit log entry.
func (s *Store) AppendLog(ctx context.Context, entry domain.LogEntry) error {
	return s.db.WithContext(ctx).Create(&logRecord{LogEntry: entry}).Error
}
