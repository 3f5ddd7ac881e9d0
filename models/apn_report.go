// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// ApnReport is a confirmed parameter set received from a device. Identical
// reports share one row and bump Hits.
type ApnReport struct {
	ID                  uint      `gorm:"primaryKey"`
	RID                 uuid.UUID `gorm:"type:uuid;not null;"`
	Digest              string    `gorm:"size:64;not null;uniqueIndex"`
	ApnData             string    `gorm:"type:text;not null"`
	SimOperator         string    `gorm:"size:16;index"`
	SimOperatorName     string    `gorm:"size:255"`
	SimCountry          string    `gorm:"size:8"`
	SimDialingCode      int
	NetworkOperator     string `gorm:"size:16"`
	NetworkOperatorName string `gorm:"size:255"`
	NetworkCountry      string `gorm:"size:8"`
	Hits                int    `gorm:"not null;default:1"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName is referenced by qualified column expressions in upserts.
func (ApnReport) TableName() string {
	return "apn_reports"
}

func (report *ApnReport) BeforeCreate(tx *gorm.DB) (err error) {
	report.RID = uuid.New()
	if report.Digest == "" {
		report.Digest = report.ComputeDigest()
	}
	return
}

// ComputeDigest hashes the reported data and carrier fields. Country codes
// are left out so roaming devices fold into the same row.
func (report *ApnReport) ComputeDigest() string {
	sum := blake2b.Sum256([]byte(strings.Join([]string{
		report.ApnData,
		report.SimOperator,
		report.SimOperatorName,
		report.NetworkOperator,
		report.NetworkOperatorName,
	}, "\x00")))
	return hex.EncodeToString(sum[:])
}

func init() {
	AllModels = append(AllModels, &ApnReport{})
}
