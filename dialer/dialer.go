package dialer

import (
	"github.com/frankli0324/go-httpclient/internal/dialer"
)

// Dialers are responsible for creating the byte stream a request is written
// to and its response is read from, for example a raw TCP connection.
//
// A Dialer MUST NOT hold connection state: every call to Dial returns a
// fresh stream that the [Client] owns and closes after one exchange.
type Dialer = dialer.Dialer

// CoreDialer is the default implementation of the [Dialer] interface. It would
// be used by a zero value [Client].
type CoreDialer = dialer.CoreDialer

// Socket selects how CoreDialer opens connections: through the net package
// or directly with socket(2)/connect(2).
type Socket = dialer.Socket

const (
	SocketNet = dialer.SocketNet
	SocketRaw = dialer.SocketRaw
)

// we need a dedicated resolver to customize the DNS server used for
// resolving hostnames.
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
type ResolveConfig = dialer.ResolveConfig

var ErrRawUnsupported = dialer.ErrRawUnsupported

var ParseSocket = dialer.ParseSocket
