// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package culinarydb holds the domain model and the local record store.
//
// Records are JSON documents keyed by (scope, key) with an explicit schema
// version, so the storage medium can be swapped without touching callers.
package culinarydb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Current schema versions of the stored document types.
const (
	verFavorites = 1
	verFeedItems = 1
	verLikedIDs  = 1
	verFeedCache = 1
	verUser      = 1
	verSession   = 1
)

type record struct {
	Scope         string `gorm:"primaryKey;size:128"`
	Key           string `gorm:"primaryKey;size:128"`
	SchemaVersion int
	Data          []byte
	UpdatedAt     time.Time
}

// OpenSQLite opens the embedded database at path and migrates the record
// schema.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("culinarydb: opening sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("culinarydb: migrating record schema: %w", err)
	}
	return db, nil
}

// NewStore returns a Store backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Store is the versioned key-value record store backing the typed
// repositories.
type Store struct {
	db *gorm.DB
}

func (s *Store) get(ctx context.Context, scope string, key string, out any) (bool, error) {
	var rec record
	err := s.db.WithContext(ctx).Where("scope = ? AND key = ?", scope, key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("culinarydb: reading record %s/%s: %w", scope, key, err)
	}
	if err := json.Unmarshal(rec.Data, out); err != nil {
		return false, fmt.Errorf("culinarydb: unmarshalling record %s/%s: %w", scope, key, err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, scope string, key string, version int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("culinarydb: marshalling record %s/%s: %w", scope, key, err)
	}
	rec := record{
		Scope:         scope,
		Key:           key,
		SchemaVersion: version,
		Data:          data,
		UpdatedAt:     time.Now(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("culinarydb: writing record %s/%s: %w", scope, key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, scope string, key string) error {
	if err := s.db.WithContext(ctx).Where("scope = ? AND key = ?", scope, key).Delete(&record{}).Error; err != nil {
		return fmt.Errorf("culinarydb: deleting record %s/%s: %w", scope, key, err)
	}
	return nil
}

func userScope(userID string) string {
	if userID == "" {
		userID = "guest"
	}
	return "user-" + userID
}
