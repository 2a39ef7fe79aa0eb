//go:build linux || darwin || freebsd

package storage

import (
	"time"

	"golang.org/x/sys/unix"
)

// osChangeTime returns the inode change time of path
func osChangeTime(path string) (time.Time, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, false
	}
	return time.Unix(st.Ctim.Unix()), true
}
