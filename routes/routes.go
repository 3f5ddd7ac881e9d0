// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"apn-server/commons"
	"apn-server/handlers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, apnHandler *handlers.APNHandler, reportHandler *handlers.ReportHandler) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.GET("/apn", apnHandler.ResolveHandler)
	api_v1.POST("/apn/confirm", apnHandler.ConfirmHandler)
	api_v1.GET("/reports", reportHandler.ListReportsHandler)

	e.GET("/apnReport", reportHandler.CollectReportHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	commons.Logger.Info("v1 routes registered successfully")
}
