package dialer

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

var ErrRawUnsupported = errors.New("raw sockets are not supported on this platform")

// Dialers handle everything related to establishing the connection,
// including name resolution and the choice of socket implementation.
type Dialer interface {
	// Dial returns a connected byte stream for exactly one exchange.
	// the caller owns the stream and must close it.
	Dial(ctx context.Context, host string, port int) (io.ReadWriteCloser, error)
	Unwrap() Dialer
}

type Socket int

const (
	// SocketNet dials with [net.Dialer].
	SocketNet Socket = iota
	// SocketRaw opens the socket with socket(2) and connect(2) directly.
	SocketRaw
)

func ParseSocket(s string) (Socket, error) {
	switch s {
	case "", "net":
		return SocketNet, nil
	case "raw":
		return SocketRaw, nil
	}
	return 0, errors.Errorf("unknown socket kind %q", s)
}

func (s Socket) String() string {
	if s == SocketRaw {
		return "raw"
	}
	return "net"
}

type CoreDialer struct {
	ResolveConfig *ResolveConfig
	Socket        Socket
}

func (d *CoreDialer) Clone() *CoreDialer {
	return &CoreDialer{
		ResolveConfig: d.ResolveConfig.Clone(),
		Socket:        d.Socket,
	}
}

func (d *CoreDialer) Unwrap() Dialer {
	return nil
}
