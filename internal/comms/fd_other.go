//go:build !unix

package comms

import (
	"errors"
	"os"
)

// OpenFd is only supported on unix; use comms.url on other platforms.
func OpenFd(fd int, name string) (*os.File, error) {
	return nil, errors.New("inherited team fds are not supported on this platform")
}
