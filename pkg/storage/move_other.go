//go:build !unix

package storage

func isCrossDevice(err error) bool {
	return false
}
