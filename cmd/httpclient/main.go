package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	http "github.com/frankli0324/go-httpclient"
	"github.com/frankli0324/go-httpclient/dialer"
	"github.com/frankli0324/go-httpclient/internal/config"
	"github.com/frankli0324/go-httpclient/internal/logger"
)

const usage = `httpclient [GET/POST] URL [key=value ...]

Sends a single HTTP/1.1 request and prints the status code and body.
Any method other than POST is sent as GET. key=value arguments are
form encoded into the request body.

Environment:
  HTTPCLIENT_LOG_LEVEL           debug, info, warn (default) or error
  HTTPCLIENT_MAX_RESPONSE_BYTES  fail when the response is larger, 0 = no limit
  HTTPCLIENT_SOCKET              net (default) or raw
  HTTPCLIENT_DNS_SERVER          host:port of a DNS server to use
  HTTPCLIENT_IP_NETWORK          ip (default), ip4 or ip6
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return 1
	}
	method, url, rest := "GET", args[0], []string(nil)
	if len(args) >= 2 {
		method, url, rest = args[0], args[1], args[2:]
	}
	form, err := http.ParseForm(rest)
	if err != nil {
		fmt.Fprintf(stderr, "httpclient: %v\n\n", err)
		fmt.Fprint(stdout, usage)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "httpclient: load config: %v\n", err)
		return 1
	}
	log := logger.New(cfg.LogLevel, stderr)
	defer log.Sync()

	cl, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "httpclient: %v\n", err)
		return 1
	}
	cl.UseLogger(log)

	resp, err := cl.Command(ctx, url, method, form)
	if err != nil {
		fmt.Fprintf(stderr, "httpclient: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, resp)
	return 0
}

func newClient(cfg *config.Config) (*http.Client, error) {
	socket, err := dialer.ParseSocket(cfg.Socket)
	if err != nil {
		return nil, err
	}
	d := &dialer.CoreDialer{
		Socket: socket,
		ResolveConfig: &dialer.ResolveConfig{
			CustomDNSServer: cfg.DNSServer,
			Network:         cfg.IPNetwork,
		},
	}
	cl := &http.Client{MaxResponseSize: cfg.MaxResponseBytes}
	cl.UseDialer(func(dialer.Dialer) dialer.Dialer { return d })
	return cl, nil
}
