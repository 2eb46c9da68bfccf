//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package dialer

import (
	"io"
	"net"
)

func dialRaw(_ []net.IP, _ int) (io.ReadWriteCloser, error) {
	return nil, ErrRawUnsupported
}
