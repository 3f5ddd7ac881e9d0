// SPDX-License-Identifier: GPL-3.0-only

package apn

// Resolver turns a carrier identity into catalog parameters. Composite keys
// tell apart MVNOs that share their host's network code; the legacy
// SIM-code key covers carriers without composite entries and may pick the
// host's parameters for such an MVNO.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a Resolver over c, or over Default() when c is nil.
func NewResolver(c *Catalog) *Resolver {
	if c == nil {
		c = Default()
	}
	return &Resolver{catalog: c}
}

// Resolve looks up id with legacy fallback enabled.
func (r *Resolver) Resolve(id CarrierIdentity) (Parameters, bool) {
	return r.ResolveWithFallback(id, true)
}

func (r *Resolver) ResolveWithFallback(id CarrierIdentity, allowFallback bool) (Parameters, bool) {
	p, kind := r.Match(id, allowFallback)
	return p, kind != MatchNone
}

// Match is ResolveWithFallback that also reports which key matched.
func (r *Resolver) Match(id CarrierIdentity, allowFallback bool) (Parameters, MatchKind) {
	if p, ok := r.catalog.Lookup(id.CompositeKey()); ok {
		return p, MatchComposite
	}
	if !allowFallback {
		return Parameters{}, MatchNone
	}
	if p, ok := r.catalog.Lookup(id.LegacyKey()); ok {
		return p, MatchLegacy
	}
	return Parameters{}, MatchNone
}
