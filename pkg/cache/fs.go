// Copyright 2026 GitAR Authors
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import "os"

// removeAll is a thin indirection over os.RemoveAll kept in its own
// file so Wipe's tests can be read next to the one syscall they exercise.
func removeAll(path string) error {
	return os.RemoveAll(path)
}
