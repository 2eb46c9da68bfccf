package transport

import (
	"io"

	"github.com/frankli0324/go-httpclient/internal/model"
)

// Transport frames one request onto a connection and collects the raw
// response from it.
type Transport interface {
	Write(w io.Writer, req *model.Request) error
	ReadAll(r io.Reader) (string, error)
}

var _ Transport = (*HTTP1)(nil)
