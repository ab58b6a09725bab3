package history

import (
	"fmt"
	"slices"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Store persists the task lines entered at the prompt across sessions.
// The session Ledger itself is deliberately not persisted.
type Store struct {
	db *gorm.DB
}

// TaskEntry is one task line entered at the prompt.
type TaskEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Input      string
	Complexity string
	Completed  bool
}

// NewStore opens (creating if needed) the task history database.
func NewStore(dbFilePath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open task history database: %w", err)
	}

	if err := db.AutoMigrate(&TaskEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate task history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordTask inserts a task line at the moment it is accepted.
func (s *Store) RecordTask(input, complexity string) (*TaskEntry, error) {
	entry := TaskEntry{
		Input:      input,
		Complexity: complexity,
	}

	result := s.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// FinishTask marks a previously recorded task as completed.
func (s *Store) FinishTask(entry *TaskEntry) (*TaskEntry, error) {
	entry.Completed = true

	result := s.db.Save(entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}

// RecentTasks returns up to limit task entries in chronological order.
func (s *Store) RecentTasks(limit int) ([]TaskEntry, error) {
	var entries []TaskEntry
	result := s.db.Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}
