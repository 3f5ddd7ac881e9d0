// SPDX-License-Identifier: GPL-3.0-only

// Package store holds the persistent apn.Store backends.
package store

import "errors"

// ErrUnavailable wraps failures of the underlying database or cache.
var ErrUnavailable = errors.New("store unavailable")
