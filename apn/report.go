// SPDX-License-Identifier: GPL-3.0-only

package apn

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	// ReportedStateKey is the store key holding the last reported fingerprint.
	ReportedStateKey     = "apn_reported_data"
	DefaultReportURL     = "http://apn.softcoil.com/apnReport"
	DefaultReportTimeout = 1000 * time.Millisecond
)

// Outcome describes what a MaybeReport call did.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeSent
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// NewReportClient returns an HTTP client whose connect and response-header
// waits are each bounded by timeout. There is no overall deadline because
// the response body is never read.
func NewReportClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
		},
	}
}

type ReporterOption func(*Reporter)

func WithEndpoint(endpoint string) ReporterOption {
	return func(r *Reporter) { r.endpoint = endpoint }
}

func WithClient(client HTTPGetter) ReporterOption {
	return func(r *Reporter) { r.client = client }
}

func WithLogger(logger *log.Logger) ReporterOption {
	return func(r *Reporter) { r.logger = logger }
}

// WithObserver registers a callback invoked once per MaybeReport call.
func WithObserver(fn func(Outcome)) ReporterOption {
	return func(r *Reporter) { r.observe = fn }
}

// Reporter sends a confirmed parameter set to the report endpoint once per
// distinct fingerprint.
//
// The read-compare-persist sequence is not atomic. Two concurrent calls
// with different candidates may both report, or one may overwrite the
// other's fingerprint so that a later repeat is reported again. Reports are
// best-effort telemetry and this is accepted.
type Reporter struct {
	store    Store
	client   HTTPGetter
	endpoint string
	logger   *log.Logger
	observe  func(Outcome)
}

func NewReporter(store Store, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		store:    store,
		endpoint: DefaultReportURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = NewReportClient(DefaultReportTimeout)
	}
	if r.logger == nil {
		r.logger = log.New("apn")
	}
	return r
}

// MaybeReportFrom is MaybeReport with identity and country read from p.
// Without a provider there is nothing to report against and the call is
// a no-op.
func (r *Reporter) MaybeReportFrom(candidate *Parameters, p IdentityProvider) {
	if candidate == nil || p == nil {
		return
	}
	id, country := IdentityOf(p)
	r.MaybeReport(candidate, id, country)
}

// MaybeReport reports candidate unless its fingerprint equals the stored
// one. The fingerprint is stored before the request goes out so a repeat
// call never reports twice, even when the request fails. It blocks for at
// most the client's timeouts and never returns an error.
//
// The comparison uses the raw fields, so a "null" proxy and an empty proxy
// count as different values even though both resolve to no proxy.
func (r *Reporter) MaybeReport(candidate *Parameters, id CarrierIdentity, country CountryInfo) {
	if candidate == nil {
		return
	}
	fingerprint := candidate.Fingerprint()
	if last, ok := r.store.Get(ReportedStateKey); ok && last == fingerprint {
		r.done(OutcomeSkipped)
		return
	}
	// A failed write is logged and the report still goes out.
	if err := r.store.Set(ReportedStateKey, fingerprint); err != nil {
		r.logger.Warnf("Failed to persist reported APN data: %v", err)
	}

	// Report failures end here. The stored fingerprint stays and nothing
	// is retried.
	if err := r.send(fingerprint, id, country); err != nil {
		r.logger.Debugf("APN report not delivered: %v", err)
		r.done(OutcomeFailed)
		return
	}
	r.logger.Debugf("APN report delivered for %s", id.CompositeKey())
	r.done(OutcomeSent)
}

// ReportURL builds the report request URL for fingerprint.
func (r *Reporter) ReportURL(fingerprint string, id CarrierIdentity, country CountryInfo) (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse report endpoint: %w", err)
	}
	q := url.Values{}
	q.Set("apnData", fingerprint)
	q.Set("simOperator", id.SimOperator)
	q.Set("simOperatorName", id.SimOperatorName)
	q.Set("simCountry", country.SimCountry)
	q.Set("networkOperator", id.NetworkOperator)
	q.Set("networkOperatorName", id.NetworkOperatorName)
	q.Set("networkCountry", country.NetworkCountry)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (r *Reporter) send(fingerprint string, id CarrierIdentity, country CountryInfo) error {
	reportURL, err := r.ReportURL(fingerprint, id, country)
	if err != nil {
		return err
	}
	resp, err := r.client.Get(reportURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("report endpoint returned %s", resp.Status)
	}
	return nil
}

func (r *Reporter) done(o Outcome) {
	if r.observe != nil {
		r.observe(o)
	}
}
