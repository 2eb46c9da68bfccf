package dialer

import (
	"context"
	"io"
	"net"
	"strconv"

	"github.com/pkg/errors"
)

var zeroDialer net.Dialer
var customDnsDialer = net.Dialer{
	Resolver: &customServerResolver,
}

func (d *CoreDialer) Dial(ctx context.Context, host string, port int) (io.ReadWriteCloser, error) {
	cfg := d.ResolveConfig
	if static, ok := cfg.staticHost(host); ok {
		host = static
	}
	hp := net.JoinHostPort(host, strconv.Itoa(port))

	if d.Socket == SocketRaw {
		ips, err := d.lookup(ctx, cfg, host)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", host)
		}
		conn, err := dialRaw(ips, port)
		if err != nil {
			return nil, errors.Wrapf(err, "dial %s", hp)
		}
		return conn, nil
	}

	network, dialer, dialctx := "tcp", &zeroDialer, ctx
	if cfg != nil {
		if cfg.Network == "ip4" {
			network = "tcp4"
		} else if cfg.Network == "ip6" {
			network = "tcp6"
		}
		if dns := cfg.CustomDNSServer; dns != "" {
			dialctx = dnsServerCtx{dialctx, dns}
			dialer = &customDnsDialer
		}
	}
	conn, err := dialer.DialContext(dialctx, network, hp)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", hp)
	}
	return conn, nil
}
