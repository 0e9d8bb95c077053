//go:build !unix

package debug

import "errors"

func maxRSS() (uint64, error) {
	return 0, errors.New("max rss not available on this platform")
}
