package transport

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/frankli0324/go-httpclient/internal/model"
)

const readChunkSize = 1024

var ErrResponseTooLarge = errors.New("response exceeds size limit")

// HTTP1 reads responses until EOF. MaxResponseSize <= 0 means the read is
// unbounded.
type HTTP1 struct {
	MaxResponseSize int64
}

func (t *HTTP1) Write(w io.Writer, r *model.Request) error {
	return SendAll(w, []byte(r.Build()))
}

// ReadAll reads the raw response. Parsing is left to the caller so that it
// can happen after the connection is released.
func (t *HTTP1) ReadAll(r io.Reader) (string, error) {
	return ReadAll(r, t.MaxResponseSize)
}

// SendAll does not return until every byte of p was accepted by w, or w
// failed.
func SendAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return errors.Wrap(err, "send")
		}
		if n == 0 {
			return errors.Wrap(io.ErrShortWrite, "send")
		}
		p = p[n:]
	}
	return nil
}

// ReadAll accumulates everything read from r until EOF.
func ReadAll(r io.Reader, limit int64) (string, error) {
	var buf bytes.Buffer
	part := make([]byte, readChunkSize)
	for {
		n, err := r.Read(part)
		if n > 0 {
			buf.Write(part[:n])
			if limit > 0 && int64(buf.Len()) > limit {
				return "", errors.Wrapf(ErrResponseTooLarge, "more than %d bytes", limit)
			}
		}
		if err == io.EOF {
			return buf.String(), nil
		}
		if err != nil {
			return "", errors.Wrap(err, "receive")
		}
	}
}

func ParseResponse(raw string) *model.Response {
	return &model.Response{Code: ParseCode(raw), Body: ParseBody(raw)}
}

// ParseCode returns the second token of the status line, e.g. 404 for
//
//	HTTP/1.1 404 Not Found\r\n
//
// or [model.NoCode] when there is no such token or it is not a number.
func ParseCode(raw string) model.Code {
	line := raw
	if i := strings.IndexAny(raw, "\r\n"); i >= 0 {
		line = raw[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return model.NoCode
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.NoCode
	}
	return model.ValidCode(code)
}

// ParseBody returns everything after the first blank line, or "" for a
// response without one.
func ParseBody(raw string) string {
	_, body, found := strings.Cut(raw, "\r\n\r\n")
	if !found {
		return ""
	}
	return body
}
