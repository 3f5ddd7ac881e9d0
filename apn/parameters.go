// SPDX-License-Identifier: GPL-3.0-only

package apn

import (
	"strconv"
	"strings"
)

const (
	// NullProxy is a historical sentinel meaning "no proxy".
	NullProxy = "null"
	// DefaultProxyPort applies when a proxy is set without a port.
	DefaultProxyPort = 80
)

// Parameters holds the connection parameters of one MMSC endpoint. The raw
// proxy fields are kept as supplied; accessors normalize them.
type Parameters struct {
	mmscURL      string
	proxyAddress *string
	proxyPort    *int
}

// NewParameters builds Parameters from raw values. A nil proxyAddress or
// proxyPort means the value was not supplied.
func NewParameters(mmscURL string, proxyAddress *string, proxyPort *int) Parameters {
	p := Parameters{mmscURL: mmscURL}
	if proxyAddress != nil {
		addr := *proxyAddress
		p.proxyAddress = &addr
	}
	if proxyPort != nil {
		port := *proxyPort
		p.proxyPort = &port
	}
	return p
}

// Direct returns parameters for an MMSC reached without a proxy.
func Direct(mmscURL string) Parameters {
	return NewParameters(mmscURL, nil, nil)
}

// Proxied returns parameters with a proxy and no explicit port.
func Proxied(mmscURL, address string) Parameters {
	return NewParameters(mmscURL, &address, nil)
}

// ProxiedPort returns parameters with a proxy and an explicit port.
func ProxiedPort(mmscURL, address string, port int) Parameters {
	return NewParameters(mmscURL, &address, &port)
}

func (p Parameters) MMSCURL() string {
	return p.mmscURL
}

// IsProxySet reports whether a usable proxy address was supplied.
func (p Parameters) IsProxySet() bool {
	return p.proxyAddress != nil && *p.proxyAddress != "" && *p.proxyAddress != NullProxy
}

// ProxyAddress returns the proxy address, or "" when no proxy is set
// regardless of the raw stored value.
func (p Parameters) ProxyAddress() string {
	if !p.IsProxySet() {
		return ""
	}
	return *p.proxyAddress
}

// ProxyPort returns DefaultProxyPort when a proxy is set without a port,
// otherwise the stored port (0 when absent). The value is meaningless when
// IsProxySet is false.
func (p Parameters) ProxyPort() int {
	if p.proxyPort == nil {
		if p.IsProxySet() {
			return DefaultProxyPort
		}
		return 0
	}
	return *p.proxyPort
}

// RawProxyAddress returns the proxy address exactly as supplied.
func (p Parameters) RawProxyAddress() (string, bool) {
	if p.proxyAddress == nil {
		return "", false
	}
	return *p.proxyAddress, true
}

// RawProxyPort returns the proxy port exactly as supplied.
func (p Parameters) RawProxyPort() (int, bool) {
	if p.proxyPort == nil {
		return 0, false
	}
	return *p.proxyPort, true
}

// Fingerprint renders mmscUrl|proxyAddress|proxyPort from the raw fields,
// writing absent values as the literal "null". A "null" proxy and a missing
// proxy therefore fingerprint the same, but "" does not.
func (p Parameters) Fingerprint() string {
	addr := NullProxy
	if p.proxyAddress != nil {
		addr = *p.proxyAddress
	}
	port := NullProxy
	if p.proxyPort != nil {
		port = strconv.Itoa(*p.proxyPort)
	}
	return strings.Join([]string{p.mmscURL, addr, port}, KeyDelimiter)
}

func (p Parameters) String() string {
	if !p.IsProxySet() {
		return p.mmscURL
	}
	return p.mmscURL + " via " + p.ProxyAddress() + ":" + strconv.Itoa(p.ProxyPort())
}
