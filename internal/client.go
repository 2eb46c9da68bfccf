package internal

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/frankli0324/go-httpclient/internal/dialer"
	"github.com/frankli0324/go-httpclient/internal/model"
	"github.com/frankli0324/go-httpclient/internal/transport"
)

type PreparedRequest = model.PreparedRequest

type Handler = func(ctx context.Context, req *PreparedRequest) (*model.Response, error)
type Middleware func(next Handler) Handler

var defaultDialer = &dialer.CoreDialer{}

// Client sends one request per connection and reads the response until the
// server closes it. The zero value is ready to use. A Client holds no state
// between calls, so it may be shared by goroutines once configured.
type Client struct {
	// MaxResponseSize caps the number of response bytes read. Zero means
	// the response is read until EOF however large it is.
	MaxResponseSize int64

	middlewares []Middleware
	dialer      dialer.Dialer
	transport   transport.Transport
	logger      *zap.Logger
	clock       clock.Clock
}

// Use appends mws to the chain. The first "Use"d mw is the outermost one.
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// UseDialer replaces the dialer with the result of wrap, which receives
// the current one.
func (c *Client) UseDialer(wrap func(dialer.Dialer) dialer.Dialer) {
	c.dialer = wrap(c.getDialer())
}

// UseTransport replaces the HTTP/1.1 codec. MaxResponseSize only applies to
// the default one.
func (c *Client) UseTransport(t transport.Transport) { c.transport = t }

func (c *Client) UseLogger(l *zap.Logger) { c.logger = l }

func (c *Client) UseClock(cl clock.Clock) { c.clock = cl }

func (c *Client) getDialer() dialer.Dialer {
	if c.dialer != nil {
		return c.dialer
	}
	return defaultDialer
}

func (c *Client) getTransport() transport.Transport {
	if c.transport != nil {
		return c.transport
	}
	return &transport.HTTP1{MaxResponseSize: c.MaxResponseSize}
}

func (c *Client) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return zap.NewNop()
}

func (c *Client) getClock() clock.Clock {
	if c.clock != nil {
		return c.clock
	}
	return clock.New()
}

func (c *Client) Get(ctx context.Context, url string, form model.Form) (*model.Response, error) {
	return c.Do(ctx, "GET", url, form)
}

func (c *Client) Post(ctx context.Context, url string, form model.Form) (*model.Response, error) {
	return c.Do(ctx, "POST", url, form)
}

// Command issues a POST when command is "POST" and a GET otherwise.
func (c *Client) Command(ctx context.Context, url, command string, form model.Form) (*model.Response, error) {
	if command == "POST" {
		return c.Post(ctx, url, form)
	}
	return c.Get(ctx, url, form)
}

// Do sends a method request with the encoded form as its body. Malformed
// status lines do not fail the call, the returned response carries
// [model.NoCode] instead. Cancelling ctx closes the connection and makes
// Do return even when the server never closes its side.
func (c *Client) Do(ctx context.Context, method, url string, form model.Form) (*model.Response, error) {
	pr, err := model.Prepare(method, url, form)
	if err != nil {
		return nil, err
	}
	next := c.logged(c.roundTrip)
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		next = c.middlewares[i](next)
	}
	return next(ctx, pr)
}

func (c *Client) roundTrip(ctx context.Context, pr *PreparedRequest) (*model.Response, error) {
	conn, err := c.getDialer().Dial(ctx, pr.Target.Host, pr.Target.Port)
	if err != nil {
		return nil, err
	}
	t := c.getTransport()

	// reads block until the peer closes, closing our end is the only way
	// to abandon the exchange once ctx is done
	interrupted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
		close(interrupted)
	})
	raw, err := func() (string, error) {
		if err := t.Write(conn, pr.Request); err != nil {
			return "", err
		}
		return t.ReadAll(conn)
	}()
	if !stop() {
		<-interrupted
		return nil, errors.Wrap(ctx.Err(), "request interrupted")
	}
	// the connection is released before anything is parsed
	if cerr := conn.Close(); cerr != nil {
		c.log().Warn("close connection", zap.String("netloc", pr.Target.NetLoc), zap.Error(cerr))
	}
	if err != nil {
		return nil, err
	}
	return transport.ParseResponse(raw), nil
}

func (c *Client) logged(next Handler) Handler {
	return func(ctx context.Context, pr *PreparedRequest) (*model.Response, error) {
		log := c.log().With(
			zap.String("method", pr.Method),
			zap.String("netloc", pr.Target.NetLoc),
			zap.String("path", pr.Path),
		)
		clk := c.getClock()
		start := clk.Now()
		log.Debug("sending request", zap.Int("content_bytes", len(pr.Content)))

		resp, err := next(ctx, pr)
		elapsed := clk.Since(start)
		if err != nil {
			log.Debug("request failed", zap.Duration("elapsed", elapsed), zap.Error(err))
			return nil, err
		}
		if !resp.Code.Valid() {
			log.Warn("malformed status line", zap.Duration("elapsed", elapsed))
		}
		log.Debug("response received",
			zap.Stringer("code", resp.Code),
			zap.Int("body_bytes", len(resp.Body)),
			zap.Duration("elapsed", elapsed),
		)
		return resp, nil
	}
}
