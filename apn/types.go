// SPDX-License-Identifier: GPL-3.0-only

package apn

import (
	"net/http"
	"strings"
)

// KeyDelimiter separates the identity fields of a composite catalog key.
const KeyDelimiter = "|"

// CarrierIdentity is the carrier as seen by the device: the SIM's home
// network and the network it is currently registered on.
type CarrierIdentity struct {
	SimOperator         string `json:"sim_operator"`
	SimOperatorName     string `json:"sim_operator_name"`
	NetworkOperator     string `json:"network_operator"`
	NetworkOperatorName string `json:"network_operator_name"`
}

// CompositeKey joins all four fields in fixed order. No case or whitespace
// normalization is applied.
func (id CarrierIdentity) CompositeKey() string {
	return strings.Join([]string{
		id.SimOperator,
		id.SimOperatorName,
		id.NetworkOperator,
		id.NetworkOperatorName,
	}, KeyDelimiter)
}

// LegacyKey is the SIM network code alone. Sub-carriers sharing a network
// code collide on it.
func (id CarrierIdentity) LegacyKey() string {
	return id.SimOperator
}

// CountryInfo carries the ISO country codes sent along with a report.
type CountryInfo struct {
	SimCountry     string `json:"sim_country"`
	NetworkCountry string `json:"network_country"`
}

// IdentityProvider exposes the live carrier identity of a device.
type IdentityProvider interface {
	SimOperator() string
	SimOperatorName() string
	NetworkOperator() string
	NetworkOperatorName() string
	SimCountryIso() string
	NetworkCountryIso() string
}

// IdentityOf reads the identity and country fields from p.
func IdentityOf(p IdentityProvider) (CarrierIdentity, CountryInfo) {
	return CarrierIdentity{
			SimOperator:         p.SimOperator(),
			SimOperatorName:     p.SimOperatorName(),
			NetworkOperator:     p.NetworkOperator(),
			NetworkOperatorName: p.NetworkOperatorName(),
		}, CountryInfo{
			SimCountry:     p.SimCountryIso(),
			NetworkCountry: p.NetworkCountryIso(),
		}
}

// StaticProvider is an IdentityProvider over fixed values.
type StaticProvider struct {
	Identity CarrierIdentity
	Country  CountryInfo
}

func (s StaticProvider) SimOperator() string         { return s.Identity.SimOperator }
func (s StaticProvider) SimOperatorName() string     { return s.Identity.SimOperatorName }
func (s StaticProvider) NetworkOperator() string     { return s.Identity.NetworkOperator }
func (s StaticProvider) NetworkOperatorName() string { return s.Identity.NetworkOperatorName }
func (s StaticProvider) SimCountryIso() string       { return s.Country.SimCountry }
func (s StaticProvider) NetworkCountryIso() string   { return s.Country.NetworkCountry }

// Store persists the last reported fingerprint. Set must be durable before
// it returns.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// HTTPGetter issues the outbound report request. *http.Client satisfies it.
type HTTPGetter interface {
	Get(url string) (*http.Response, error)
}

// MatchKind tells which lookup tier produced a result.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchComposite
	MatchLegacy
)

func (m MatchKind) String() string {
	switch m {
	case MatchComposite:
		return "composite"
	case MatchLegacy:
		return "legacy"
	default:
		return "none"
	}
}
