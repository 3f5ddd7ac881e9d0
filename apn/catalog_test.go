// SPDX-License-Identifier: GPL-3.0-only

package apn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	entries, err := EmbeddedEntries()
	if err != nil {
		t.Fatalf("EmbeddedEntries failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Expected embedded catalog to have entries")
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Key] {
			t.Errorf("Duplicate catalog key %q", e.Key)
		}
		seen[e.Key] = true
		if e.MMSC == "" {
			t.Errorf("Entry %q has empty MMSC URL", e.Key)
		}
		if n := strings.Count(e.Key, KeyDelimiter); n != 0 && n != 3 {
			t.Errorf("Entry %q has %d delimiters, expected 0 or 3", e.Key, n)
		}
	}

	if Default().Len() != len(entries) {
		t.Errorf("Expected default catalog size %d, got %d", len(entries), Default().Len())
	}
}

func TestCatalogLookup(t *testing.T) {
	c := Default()

	p, ok := c.Lookup("310410")
	if !ok {
		t.Fatal("Expected legacy key 310410 to be present")
	}
	if p.MMSCURL() != "http://mmsc.mobile.att.net" {
		t.Errorf("Expected AT&T MMSC, got %s", p.MMSCURL())
	}
	if p.ProxyAddress() != "proxy.mobile.att.net" || p.ProxyPort() != 80 {
		t.Errorf("Expected proxy.mobile.att.net:80, got %s:%d", p.ProxyAddress(), p.ProxyPort())
	}

	if _, ok := c.Lookup("999999"); ok {
		t.Error("Expected unknown key to be absent")
	}
}

func TestCatalogSentinelEntries(t *testing.T) {
	p, ok := Default().Lookup("310260")
	if !ok {
		t.Fatal("Expected legacy key 310260 to be present")
	}
	if p.IsProxySet() {
		t.Error("Expected \"null\" proxy in catalog to be unset")
	}
	if raw, _ := p.RawProxyAddress(); raw != "null" {
		t.Errorf("Expected raw proxy \"null\", got %q", raw)
	}
}

func TestBuildCatalogLaterEntryWins(t *testing.T) {
	proxy := "10.0.0.1"
	c := BuildCatalog([]Entry{
		{Key: "00101", MMSC: "http://first"},
		{Key: "00101", MMSC: "http://second", Proxy: &proxy},
	})

	if c.Len() != 1 {
		t.Fatalf("Expected 1 entry, got %d", c.Len())
	}
	p, _ := c.Lookup("00101")
	if p.MMSCURL() != "http://second" || p.ProxyAddress() != proxy {
		t.Errorf("Expected override entry, got %s", p)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.json")
	data := `{"entries":[{"key":"00101|Test|00101|Test","mmsc":"http://mms.test","proxy":"1.2.3.4","port":8080}]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	p := BuildCatalog(entries)
	got, ok := p.Lookup("00101|Test|00101|Test")
	if !ok || got.ProxyPort() != 8080 {
		t.Errorf("Expected entry with port 8080, got %v (found=%v)", got, ok)
	}
}

func TestParseJSONRejectsEmptyKey(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"entries":[{"key":"","mmsc":"http://x"}]}`)); err == nil {
		t.Error("Expected error for empty key")
	}
	if _, err := ParseJSON([]byte(`not json`)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Default().Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys not sorted at %d: %q > %q", i, keys[i-1], keys[i])
		}
	}
}

func TestEmbeddedCatalogMarkedPlaceholder(t *testing.T) {
	if src := EmbeddedSource(); !strings.HasPrefix(src, PlaceholderSource) {
		t.Errorf("Expected embedded source to start with %q, got %q", PlaceholderSource, src)
	}
}

func TestParseJSONIgnoresSource(t *testing.T) {
	entries, err := ParseJSON([]byte(`{"source":"carrier list","entries":[{"key":"00101","mmsc":"http://x"}]}`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "00101" {
		t.Errorf("Expected single 00101 entry, got %v", entries)
	}
}
