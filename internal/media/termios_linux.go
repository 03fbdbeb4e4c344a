//go:build linux

package media

import "golang.org/x/sys/unix"

// keepOutputProcessing re-enables newline translation that raw mode turns
// off, so log lines written during review still start at column zero.
func keepOutputProcessing(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	termios.Oflag |= unix.OPOST | unix.ONLCR
	return unix.IoctlSetTermios(fd, unix.TCSETS, termios)
}
