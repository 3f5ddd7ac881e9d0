// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"apn-server/apn"
	"apn-server/commons"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type APNHandler struct {
	Resolver *apn.Resolver
	Reporter *apn.Reporter
}

func NewAPNHandler(resolver *apn.Resolver, reporter *apn.Reporter) *APNHandler {
	return &APNHandler{Resolver: resolver, Reporter: reporter}
}

// ResolveHandler godoc
// @Summary      Resolve MMSC parameters
// @Description  Looks up MMSC URL and proxy for a carrier identity. The composite key is tried first, then the SIM network code alone unless fallback is false.
// @Tags         apn
// @Produce      json
// @Param        simOperator          query  string  true   "SIM network code (MCCMNC)"
// @Param        simOperatorName      query  string  false  "SIM operator display name"
// @Param        networkOperator      query  string  false  "Current network code (MCCMNC)"
// @Param        networkOperatorName  query  string  false  "Current network display name"
// @Param        fallback             query  bool    false  "Allow legacy SIM-code lookup (default true)"
// @Success      200 {object} ResolveResponse "Parameters found"
// @Failure      400 {object} echo.HTTPError  "Missing simOperator or invalid fallback value"
// @Failure      404 {object} echo.HTTPError  "No parameters for this carrier"
// @Router       /v1/apn [get]
func (h *APNHandler) ResolveHandler(c echo.Context) error {
	logger := c.Logger()

	id := apn.CarrierIdentity{
		SimOperator:         c.QueryParam("simOperator"),
		SimOperatorName:     c.QueryParam("simOperatorName"),
		NetworkOperator:     c.QueryParam("networkOperator"),
		NetworkOperatorName: c.QueryParam("networkOperatorName"),
	}
	if id.SimOperator == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "simOperator query parameter is required",
		}
	}

	allowFallback := true
	if f := c.QueryParam("fallback"); f != "" {
		v, err := strconv.ParseBool(f)
		if err != nil {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "fallback must be true or false",
			}
		}
		allowFallback = v
	}

	params, kind := h.Resolver.Match(id, allowFallback)
	commons.ResolveTotal.WithLabelValues(kind.String()).Inc()
	if kind == apn.MatchNone {
		logger.Debugf("No APN parameters for %s", id.CompositeKey())
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "No APN parameters found for this carrier",
		}
	}
	logger.Debugf("Resolved %s by %s key to %s", id.CompositeKey(), kind, params)

	return c.JSON(http.StatusOK, ResolveResponse{
		MMSCURL:      params.MMSCURL(),
		ProxyAddress: params.ProxyAddress(),
		ProxyPort:    params.ProxyPort(),
		ProxySet:     params.IsProxySet(),
		Match:        kind.String(),
	})
}

// ConfirmHandler godoc
// @Summary      Confirm working MMSC parameters
// @Description  Accepts a parameter set a device has confirmed to work. New values are forwarded once to the report endpoint in the background.
// @Tags         apn
// @Accept       json
// @Produce      json
// @Param        confirmRequest  body  ConfirmRequest  true  "Confirmed parameters and carrier identity"
// @Success      202 {object} GenericResponse "Confirmation accepted"
// @Failure      400 {object} echo.HTTPError  "Malformed payload or missing required fields"
// @Router       /v1/apn/confirm [post]
func (h *APNHandler) ConfirmHandler(c echo.Context) error {
	logger := c.Logger()

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid confirm request payload: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}
	if req.MMSCURL == "" || req.SimOperator == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "mmsc_url and sim_operator are required",
		}
	}

	params := apn.NewParameters(req.MMSCURL, req.ProxyAddress, req.ProxyPort)
	id := apn.CarrierIdentity{
		SimOperator:         req.SimOperator,
		SimOperatorName:     req.SimOperatorName,
		NetworkOperator:     req.NetworkOperator,
		NetworkOperatorName: req.NetworkOperatorName,
	}
	country := apn.CountryInfo{SimCountry: req.SimCountry, NetworkCountry: req.NetworkCountry}

	go h.Reporter.MaybeReport(&params, id, country)

	return c.JSON(http.StatusAccepted, GenericResponse{
		Message: "Confirmation accepted",
	})
}
