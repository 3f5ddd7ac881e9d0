// SPDX-License-Identifier: GPL-3.0-only

package store

import (
	"apn-server/models"
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps values in the settings table.
type GormStore struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewGormStore(db *gorm.DB, logger *log.Logger) *GormStore {
	return &GormStore{db: db, logger: logger}
}

func (s *GormStore) Get(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	var setting models.Setting
	err := s.db.Where(&models.Setting{Name: key}).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warnf("Failed to read setting %s: %v", key, err)
		}
		return "", false
	}
	return setting.Value, true
}

func (s *GormStore) Set(key, value string) error {
	setting := models.Setting{Name: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("%w: write setting %s: %v", ErrUnavailable, key, err)
	}
	return nil
}
