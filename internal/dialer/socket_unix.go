//go:build linux || darwin || freebsd || netbsd || openbsd

package dialer

import (
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// rawConn is a blocking stream socket driven by plain read(2)/write(2),
// outside of the runtime network poller.
type rawConn struct {
	fd       int
	closed   atomic.Bool
	once     sync.Once
	closeErr error
}

func dialRaw(ips []net.IP, port int) (io.ReadWriteCloser, error) {
	if len(ips) == 0 {
		return nil, errors.New("no addresses")
	}
	var lastErr error
	for _, ip := range ips {
		c, err := connectRaw(ip, port)
		if err == nil {
			return c, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func sockaddr(ip net.IP, port int) (int, unix.Sockaddr) {
	if ip4 := ip.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], ip4)
		return unix.AF_INET, sa
	}
	sa := &unix.SockaddrInet6{Port: port}
	copy(sa.Addr[:], ip.To16())
	return unix.AF_INET6, sa
}

func connectRaw(ip net.IP, port int) (*rawConn, error) {
	domain, sa := sockaddr(ip, port)
	fd, err := unix.Socket(domain, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)

	err = unix.Connect(fd, sa)
	if err == unix.EINTR {
		// the connection keeps being established in the background
		err = waitConnected(fd)
	}
	if err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("connect", err)
	}
	return &rawConn{fd: fd}, nil
}

func waitConnected(fd int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		break
	}
	soerr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if soerr != 0 {
		return unix.Errno(soerr)
	}
	return nil
}

func (c *rawConn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if c.closed.Load() {
			return 0, net.ErrClosed
		}
		n, err := unix.Read(c.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, os.NewSyscallError("read", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

// Write returns after all of p has been handed to the kernel.
func (c *rawConn) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		if c.closed.Load() {
			return written, net.ErrClosed
		}
		n, err := unix.Write(c.fd, p[written:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return written, os.NewSyscallError("write", err)
		}
		written += n
	}
	return written, nil
}

// Close may be called while another goroutine is blocked in Read, which
// close(2) alone does not wake up.
func (c *rawConn) Close() error {
	c.once.Do(func() {
		c.closed.Store(true)
		unix.Shutdown(c.fd, unix.SHUT_RDWR)
		if err := unix.Close(c.fd); err != nil {
			c.closeErr = os.NewSyscallError("close", err)
		}
	})
	return c.closeErr
}
