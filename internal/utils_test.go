package internal_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frankli0324/go-httpclient/internal"
	"github.com/frankli0324/go-httpclient/internal/dialer"
)

type fakeConn struct {
	r       io.Reader
	w       io.Writer
	written bytes.Buffer
	closed  int
}

func newFakeConn(response string) *fakeConn {
	return &fakeConn{r: strings.NewReader(response)}
}

func (c *fakeConn) Read(p []byte) (int, error) { return c.r.Read(p) }

func (c *fakeConn) Write(p []byte) (int, error) {
	if c.w != nil {
		return c.w.Write(p)
	}
	return c.written.Write(p)
}

func (c *fakeConn) Close() error {
	c.closed++
	return nil
}

// hangingConn accepts every write and blocks reads until it is closed, like
// a server which never answers.
type hangingConn struct {
	reading  chan struct{}
	done     chan struct{}
	readOnce sync.Once
	once     sync.Once
	closed   atomic.Int32
}

func newHangingConn() *hangingConn {
	return &hangingConn{reading: make(chan struct{}), done: make(chan struct{})}
}

func (c *hangingConn) Read(p []byte) (int, error) {
	c.readOnce.Do(func() { close(c.reading) })
	<-c.done
	return 0, net.ErrClosed
}

func (c *hangingConn) Write(p []byte) (int, error) { return len(p), nil }

func (c *hangingConn) Close() error {
	c.closed.Add(1)
	c.once.Do(func() { close(c.done) })
	return nil
}

// silentServer accepts one connection and reads from it without ever
// answering, until the client goes away.
func silentServer(t *testing.T) (string, <-chan struct{}) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	accepted := make(chan struct{})
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		close(accepted)
		io.Copy(io.Discard, conn)
	}()
	t.Cleanup(func() {
		l.Close()
		wg.Wait()
	})
	return l.Addr().String(), accepted
}

type TestDialer struct {
	conn  io.ReadWriteCloser
	err   error
	dials []string
}

// Dial implements dialer.Dialer.
func (t *TestDialer) Dial(ctx context.Context, host string, port int) (io.ReadWriteCloser, error) {
	t.dials = append(t.dials, net.JoinHostPort(host, strconv.Itoa(port)))
	if t.err != nil {
		return nil, t.err
	}
	return t.conn, nil
}

// Unwrap implements dialer.Dialer.
func (t *TestDialer) Unwrap() dialer.Dialer {
	return nil
}

func clientWith(d dialer.Dialer) *internal.Client {
	c := &internal.Client{}
	c.UseDialer(func(dialer.Dialer) dialer.Dialer { return d })
	return c
}

// testServer answers every connection with a fixed response and keeps the
// raw requests it received.
type testServer struct {
	Addr     string
	Requests chan string

	l  net.Listener
	wg sync.WaitGroup
}

func serve(t *testing.T, response string) *testServer {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &testServer{Addr: l.Addr().String(), Requests: make(chan string, 16), l: l}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer conn.Close()
				s.handle(conn, response)
			}()
		}
	}()
	t.Cleanup(func() {
		l.Close()
		s.wg.Wait()
	})
	return s
}

func (s *testServer) handle(conn net.Conn, response string) {
	var raw bytes.Buffer
	req, err := http.ReadRequest(bufio.NewReader(io.TeeReader(conn, &raw)))
	if err != nil {
		return
	}
	if _, err := io.ReadAll(req.Body); err != nil {
		return
	}
	s.Requests <- raw.String()
	io.WriteString(conn, response)
}
