// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

var AllModels []any

// Setting is a single persisted key/value pair.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func init() {
	AllModels = append(AllModels, &Setting{})
}
