// SPDX-License-Identifier: GPL-3.0-only

package apn

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// Entry is one catalog record. Proxy and Port stay nil when the source
// omits them.
type Entry struct {
	Key   string  `json:"key"`
	MMSC  string  `json:"mmsc"`
	Proxy *string `json:"proxy,omitempty"`
	Port  *int    `json:"port,omitempty"`
}

// RawData is the on-disk catalog format.
type RawData struct {
	// Source names where the entries were taken from.
	Source  string  `json:"source,omitempty"`
	Entries []Entry `json:"entries"`
}

// PlaceholderSource marks a dataset that was compiled by hand rather than
// taken from the reference carrier list.
const PlaceholderSource = "placeholder"

// Catalog maps composite and legacy carrier keys to Parameters. It is never
// mutated after BuildCatalog returns, so lookups need no locking.
type Catalog struct {
	entries map[string]Parameters
}

// ParseJSON decodes catalog entries, rejecting any with an empty key.
func ParseJSON(data []byte) ([]Entry, error) {
	raw, err := parseRaw(data)
	if err != nil {
		return nil, err
	}
	return raw.Entries, nil
}

func parseRaw(data []byte) (*RawData, error) {
	var raw RawData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, e := range raw.Entries {
		if e.Key == "" {
			return nil, fmt.Errorf("catalog entry %d: empty key", i)
		}
	}
	return &raw, nil
}

// LoadJSON reads and decodes a catalog file such as an override list.
func LoadJSON(filePath string) ([]Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

// EmbeddedEntries returns the reference carrier dataset compiled into the
// binary.
func EmbeddedEntries() ([]Entry, error) {
	return ParseJSON(embeddedCatalog)
}

// EmbeddedSource returns the source tag of the embedded dataset.
func EmbeddedSource() string {
	raw, err := parseRaw(embeddedCatalog)
	if err != nil {
		return ""
	}
	return raw.Source
}

// BuildCatalog indexes entries by key. When a key repeats, the later entry
// wins, which lets an override list be appended to the embedded one.
func BuildCatalog(entries []Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Parameters, len(entries))}
	for _, e := range entries {
		c.entries[e.Key] = NewParameters(e.MMSC, e.Proxy, e.Port)
	}
	return c
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the catalog built from the embedded dataset. The embedded
// file is validated by tests, so a decode failure here is a build defect.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		entries, err := EmbeddedEntries()
		if err != nil {
			panic(fmt.Sprintf("apn: embedded catalog: %v", err))
		}
		defaultCatalog = BuildCatalog(entries)
	})
	return defaultCatalog
}

// Lookup returns the parameters stored under key. Keys are matched exactly.
func (c *Catalog) Lookup(key string) (Parameters, bool) {
	p, ok := c.entries[key]
	return p, ok
}

// Len returns the number of distinct keys.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Keys returns every key in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
