//go:build unix

package comms

import (
	"fmt"
	"os"
	"syscall"
)

// OpenFd wraps an inherited file descriptor, fd 3 for the team input by convention. The fd is
// switched to non-blocking mode first so the runtime poller owns it and Close interrupts a
// pending read.
func OpenFd(fd int, name string) (*os.File, error) {
	if err := syscall.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("preparing fd %d (%s): %w", fd, name, err)
	}
	return os.NewFile(uintptr(fd), name), nil
}
