//go:build !(linux || darwin || freebsd)

package storage

import "time"

// osChangeTime is unavailable on this platform; callers fall back to the modification time
func osChangeTime(path string) (time.Time, bool) {
	return time.Time{}, false
}
