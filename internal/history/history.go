// Package history keeps a queryable index of every download outcome, so a
// batch run over the same listing can be audited after the fact.
package history

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	reddit_archiver "github.com/hfranklin/reddit-archiver"
)

// A Record is one processed post.
type Record struct {
	ID        uint   `gorm:"primarykey"`
	PostID    string `gorm:"index"`
	Host      string
	Title     string
	MediaURL  string
	LocalPath string
	Status    string
	CreatedAt time.Time
}

type Store struct {
	db *gorm.DB
}

func Open(path string, logger *zap.Logger) (*Store, error) {
	gormLogger := zapgorm2.New(logger)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// RecordOutcome appends one row per processed post.
func (s *Store) RecordOutcome(post reddit_archiver.PostReference, outcome reddit_archiver.DownloadOutcome) error {
	record := Record{
		PostID:    post.ID().UnwrapOr(""),
		Host:      post.Host,
		Title:     post.Title,
		MediaURL:  post.MediaURL,
		LocalPath: outcome.LocalPath.UnwrapOr(""),
		Status:    string(outcome.Status),
	}
	return s.db.Create(&record).Error
}

// Recent returns the most recently recorded outcomes, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	var records []Record
	if err := s.db.Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Succeeded returns how many recorded outcomes were successful downloads.
func (s *Store) Succeeded() (int64, error) {
	var count int64
	err := s.db.Model(&Record{}).Where("status = ?", string(reddit_archiver.OutcomeSucceeded)).Count(&count).Error
	return count, err
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
