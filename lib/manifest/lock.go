// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import "time"

// LockRecord identifies the process holding a manifest lock. It is
// written CBOR-encoded into the lock file so that a second invocation
// can say who is in the way.
type LockRecord struct {
	PID        int       `cbor:"pid"`
	Hostname   string    `cbor:"hostname"`
	Operation  string    `cbor:"operation"`
	RunID      string    `cbor:"run_id"`
	AcquiredAt time.Time `cbor:"acquired_at"`
}

// LockPath returns the advisory lock file path for a manifest.
func LockPath(manifestPath string) string {
	return manifestPath + ".lock"
}
