//go:build !unix

package device

import "os"

func checkDeviceAccess(path string) error {
	_, err := os.Stat(path)
	return err
}
