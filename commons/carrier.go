// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"apn-server/apn"
	"os"
	"strings"
)

var APNCatalog *apn.Catalog

// InitCatalog builds APNCatalog from the embedded dataset, merging entries
// from overridePath over it when that file exists.
func InitCatalog(overridePath string) {
	entries, err := apn.EmbeddedEntries()
	if err != nil {
		Logger.Fatalf("Failed to load APN catalog: %v", err)
	}
	Logger.Debugf("Loaded %d embedded APN entries", len(entries))
	if strings.HasPrefix(apn.EmbeddedSource(), apn.PlaceholderSource) {
		Logger.Warn("Embedded APN catalog is placeholder data, set APN_CATALOG_OVERRIDE to the reference carrier list")
	}

	if overridePath != "" {
		if _, err := os.Stat(overridePath); err == nil {
			overrides, err := apn.LoadJSON(overridePath)
			if err != nil {
				Logger.Warnf("Failed to load APN catalog overrides: %v", err)
			} else {
				entries = append(entries, overrides...)
				Logger.Infof("Loaded %d APN override entries", len(overrides))
			}
		} else {
			Logger.Warnf("APN catalog override %s not found", overridePath)
		}
	}

	APNCatalog = apn.BuildCatalog(entries)
	Logger.Infof("Loaded %d total APN entries", APNCatalog.Len())
}
