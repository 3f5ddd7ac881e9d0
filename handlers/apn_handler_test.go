// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"apn-server/apn"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type recordingGetter struct {
	urls chan string
}

func (g *recordingGetter) Get(u string) (*http.Response, error) {
	g.urls <- u
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func newTestAPNServer(getter apn.HTTPGetter, observe func(apn.Outcome)) *echo.Echo {
	reporter := apn.NewReporter(apn.NewMemoryStore(), apn.WithClient(getter), apn.WithObserver(observe))
	h := NewAPNHandler(apn.NewResolver(nil), reporter)
	e := echo.New()
	e.GET("/v1/apn", h.ResolveHandler)
	e.POST("/v1/apn/confirm", h.ConfirmHandler)
	return e
}

func resolveRequest(e *echo.Echo, query url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/apn?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResolveHandlerComposite(t *testing.T) {
	e := newTestAPNServer(&recordingGetter{urls: make(chan string, 1)}, nil)

	rec := resolveRequest(e, url.Values{
		"simOperator":         {"310410"},
		"simOperatorName":     {"Cricket"},
		"networkOperator":     {"310410"},
		"networkOperatorName": {"AT&T"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ResolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Match != "composite" {
		t.Errorf("Expected composite match, got %s", resp.Match)
	}
	if resp.MMSCURL != "http://mmsc.aiowireless.net" {
		t.Errorf("Expected Cricket MMSC, got %s", resp.MMSCURL)
	}
	if !resp.ProxySet || resp.ProxyAddress != "proxy.aiowireless.net" || resp.ProxyPort != 80 {
		t.Errorf("Expected proxy.aiowireless.net:80, got set=%v %s:%d", resp.ProxySet, resp.ProxyAddress, resp.ProxyPort)
	}
}

func TestResolveHandlerFallback(t *testing.T) {
	e := newTestAPNServer(&recordingGetter{urls: make(chan string, 1)}, nil)
	query := url.Values{
		"simOperator":         {"311480"},
		"simOperatorName":     {"Some MVNO"},
		"networkOperator":     {"311480"},
		"networkOperatorName": {"Verizon"},
	}

	rec := resolveRequest(e, query)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 with fallback, got %d", rec.Code)
	}
	var resp ResolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Match != "legacy" {
		t.Errorf("Expected legacy match, got %s", resp.Match)
	}
	if resp.ProxySet || resp.ProxyAddress != "" {
		t.Errorf("Expected no proxy for \"null\" sentinel, got set=%v address=%q", resp.ProxySet, resp.ProxyAddress)
	}

	query.Set("fallback", "false")
	if rec := resolveRequest(e, query); rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 without fallback, got %d", rec.Code)
	}
}

func TestResolveHandlerBadRequests(t *testing.T) {
	e := newTestAPNServer(&recordingGetter{urls: make(chan string, 1)}, nil)

	if rec := resolveRequest(e, url.Values{}); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without simOperator, got %d", rec.Code)
	}
	if rec := resolveRequest(e, url.Values{"simOperator": {"310260"}, "fallback": {"maybe"}}); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid fallback, got %d", rec.Code)
	}
	if rec := resolveRequest(e, url.Values{"simOperator": {"00101"}}); rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown carrier, got %d", rec.Code)
	}
}

func TestConfirmHandlerReportsOnce(t *testing.T) {
	getter := &recordingGetter{urls: make(chan string, 4)}
	outcomes := make(chan apn.Outcome, 4)
	e := newTestAPNServer(getter, func(o apn.Outcome) { outcomes <- o })

	body := `{
		"sim_operator": "310260",
		"sim_operator_name": "Mint",
		"sim_country": "us",
		"network_operator": "310260",
		"network_operator_name": "T-Mobile",
		"network_country": "us",
		"mmsc_url": "http://wholesale.mmsmvno.com/mms/wapenc",
		"proxy_address": "null"
	}`

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/apn/confirm", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
		}
		select {
		case <-outcomes:
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for report")
		}
	}

	if len(getter.urls) != 1 {
		t.Fatalf("Expected 1 outbound report, got %d", len(getter.urls))
	}
	u, err := url.Parse(<-getter.urls)
	if err != nil {
		t.Fatalf("Failed to parse report URL: %v", err)
	}
	if got := u.Query().Get("apnData"); got != "http://wholesale.mmsmvno.com/mms/wapenc|null|null" {
		t.Errorf("Expected raw fingerprint, got %s", got)
	}
	if got := u.Query().Get("simOperatorName"); got != "Mint" {
		t.Errorf("Expected simOperatorName Mint, got %s", got)
	}
}

func TestConfirmHandlerValidation(t *testing.T) {
	e := newTestAPNServer(&recordingGetter{urls: make(chan string, 1)}, nil)

	for _, body := range []string{`{"sim_operator":"310260"}`, `{"mmsc_url":"http://mms"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/v1/apn/confirm", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %s, got %d", body, rec.Code)
		}
	}
}
