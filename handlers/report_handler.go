// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"apn-server/commons"
	"apn-server/models"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportPublisher forwards collected reports to a broker.
type ReportPublisher interface {
	PublishReport(ctx context.Context, msg *models.ReportMessage) error
}

type ReportHandler struct {
	DB        *gorm.DB
	Publisher ReportPublisher
}

func NewReportHandler(db *gorm.DB, publisher ReportPublisher) *ReportHandler {
	return &ReportHandler{DB: db, Publisher: publisher}
}

// dialingCode maps an ISO 3166-1 alpha-2 code to its calling code, or 0.
func dialingCode(iso string) int {
	if iso == "" {
		return 0
	}
	return phonenumbers.GetCountryCodeForRegion(strings.ToUpper(iso))
}

// reportUpsert folds a repeated report into its existing row. The hits
// column is qualified with the table name because Postgres rejects a bare
// column inside DO UPDATE as ambiguous with EXCLUDED.
func reportUpsert(report *models.ApnReport) clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "digest"}},
		DoUpdates: clause.Assignments(map[string]any{
			"hits":            gorm.Expr("apn_reports.hits + 1"),
			"sim_country":     report.SimCountry,
			"network_country": report.NetworkCountry,
			"updated_at":      time.Now(),
		}),
	}
}

// CollectReportHandler godoc
// @Summary      Collect an APN report
// @Description  Receives the report a device sends after confirming MMSC parameters. Identical reports are folded into one record with a hit count.
// @Tags         reports
// @Param        apnData              query  string  true   "Fingerprint mmscUrl|proxyAddress|proxyPort"
// @Param        simOperator          query  string  false  "SIM network code"
// @Param        simOperatorName      query  string  false  "SIM operator display name"
// @Param        simCountry           query  string  false  "SIM ISO country code"
// @Param        networkOperator      query  string  false  "Current network code"
// @Param        networkOperatorName  query  string  false  "Current network display name"
// @Param        networkCountry       query  string  false  "Current network ISO country code"
// @Success      204 "Report recorded"
// @Failure      400 {object} echo.HTTPError "Missing apnData"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /apnReport [get]
func (h *ReportHandler) CollectReportHandler(c echo.Context) error {
	logger := c.Logger()

	apnData := c.QueryParam("apnData")
	if apnData == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "apnData query parameter is required",
		}
	}

	report := models.ApnReport{
		ApnData:             apnData,
		SimOperator:         c.QueryParam("simOperator"),
		SimOperatorName:     c.QueryParam("simOperatorName"),
		SimCountry:          c.QueryParam("simCountry"),
		NetworkOperator:     c.QueryParam("networkOperator"),
		NetworkOperatorName: c.QueryParam("networkOperatorName"),
		NetworkCountry:      c.QueryParam("networkCountry"),
		Hits:                1,
	}
	report.SimDialingCode = dialingCode(report.SimCountry)
	report.Digest = report.ComputeDigest()

	err := h.DB.Clauses(reportUpsert(&report)).Create(&report).Error
	if err != nil {
		logger.Errorf("Failed to record APN report: %v", err)
		return echo.ErrInternalServerError
	}
	if err := h.DB.Where("digest = ?", report.Digest).First(&report).Error; err != nil {
		logger.Errorf("Failed to reload APN report: %v", err)
		return echo.ErrInternalServerError
	}
	commons.ReportsReceivedTotal.Inc()
	logger.Infof("APN report for %s recorded (hits=%d)", report.SimOperator, report.Hits)

	if h.Publisher != nil {
		if err := h.Publisher.PublishReport(c.Request().Context(), models.NewReportMessage(report)); err != nil {
			logger.Warnf("Failed to publish APN report %s: %v", report.RID, err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// ListReportsHandler godoc
// @Summary      List collected APN reports
// @Description  Returns collected reports, most recently received first.
// @Tags         reports
// @Produce      json
// @Param        sim_operator  query  string  false  "Filter by SIM network code"
// @Param        page          query  int     false  "Page number (default 1)"
// @Param        page_size     query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} ReportListResponse "Paginated list of reports"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/reports [get]
func (h *ReportHandler) ListReportsHandler(c echo.Context) error {
	logger := c.Logger()

	page := 1
	pageSize := 10
	if p := c.QueryParam("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if _, err := fmt.Sscanf(ps, "%d", &pageSize); err != nil || pageSize < 1 {
			pageSize = 10
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}

	simOperator := c.QueryParam("sim_operator")
	filter := func(tx *gorm.DB) *gorm.DB {
		if simOperator != "" {
			return tx.Where("sim_operator = ?", simOperator)
		}
		return tx
	}

	var total int64
	if err := h.DB.Model(&models.ApnReport{}).Scopes(filter).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count APN reports: %v", err)
		return echo.ErrInternalServerError
	}

	offset := (page - 1) * pageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var reports []models.ApnReport
	if err := h.DB.Scopes(filter).
		Order("updated_at DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reports).Error; err != nil {
		logger.Errorf("Failed to fetch APN reports: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]ReportDetails, 0, len(reports))
	for _, r := range reports {
		details = append(details, ReportDetails{
			RID:                 r.RID.String(),
			ApnData:             r.ApnData,
			SimOperator:         r.SimOperator,
			SimOperatorName:     r.SimOperatorName,
			SimCountry:          r.SimCountry,
			SimDialingCode:      r.SimDialingCode,
			NetworkOperator:     r.NetworkOperator,
			NetworkOperatorName: r.NetworkOperatorName,
			NetworkCountry:      r.NetworkCountry,
			Hits:                r.Hits,
			CreatedAt:           r.CreatedAt.Format(time.RFC3339),
			UpdatedAt:           r.UpdatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, ReportListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Reports retrieved successfully",
	})
}
