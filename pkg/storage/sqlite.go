package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type snapshotRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (snapshotRecord) TableName() string {
	return "snapshots"
}

// SQLiteAdapter stores snapshots in a local SQLite database, one row per key.
type SQLiteAdapter struct {
	db *gorm.DB
}

func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	if path == "" {
		return nil, errors.New("sqlite adapter path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite snapshot db: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating snapshot schema: %w", err)
	}
	return &SQLiteAdapter{db: db}, nil
}

func (s *SQLiteAdapter) Read(ctx context.Context, key string) (string, bool, error) {
	var record snapshotRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading snapshot row: %w", err)
	}
	return record.Value, true, nil
}

func (s *SQLiteAdapter) Write(ctx context.Context, key, value string) error {
	record := snapshotRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("writing snapshot row: %w", err)
	}
	return nil
}

func (s *SQLiteAdapter) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&snapshotRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("removing snapshot row: %w", err)
	}
	return nil
}

func (s *SQLiteAdapter) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
