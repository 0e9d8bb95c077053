//go:build unix

package device

import "golang.org/x/sys/unix"

func checkDeviceAccess(path string) error {
	return unix.Access(path, unix.R_OK)
}
