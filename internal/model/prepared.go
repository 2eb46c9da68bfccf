package model

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

const DefaultPort = 80

var (
	ErrMalformedURL    = errors.New("malformed url")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrMalformedFormKV = errors.New("form argument must be key=value")
)

// Target is the decomposed form of an absolute http URL: where to connect,
// what to put in the Host header, and the request-target of the request line.
type Target struct {
	Host   string
	Port   int
	NetLoc string
	Path   string
}

func ParseTarget(rawURL string) (*Target, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedURL, "%v", err)
	}
	if u.Scheme != "http" {
		return nil, errors.Wrapf(ErrMalformedURL, "%q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Wrapf(ErrMalformedURL, "%q: missing network location", rawURL)
	}
	host, port, err := addr(u)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedURL, "%q: %v", rawURL, err)
	}
	return &Target{Host: host, Port: port, NetLoc: u.Host, Path: path(u)}, nil
}

func addr(u *url.URL) (string, int, error) {
	host := u.Hostname()
	if host == "" {
		return "", 0, errors.New("empty host")
	}
	p := u.Port()
	if p == "" {
		if strings.HasSuffix(u.Host, ":") {
			return "", 0, errors.New("empty port")
		}
		return host, DefaultPort, nil
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, errors.Errorf("invalid port %q", p)
	}
	return host, port, nil
}

func path(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

// Form holds request arguments in the order they should be encoded.
// A nil Form means no arguments were given.
type Form []Field

// ParseForm builds a Form from "key=value" strings.
func ParseForm(kvs []string) (Form, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	f := make(Form, 0, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, errors.Wrapf(ErrMalformedFormKV, "%q", kv)
		}
		f = append(f, Field{k, v})
	}
	return f, nil
}

// Encode returns the application/x-www-form-urlencoded representation.
func (f Form) Encode() string {
	if len(f) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, kv := range f {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

// RequestHeader computes the header fields implied by content. The Host
// field is left to the caller.
func RequestHeader(content string) Header {
	h := Header{
		{"Connection", "close"},
		// len counts bytes, not runes
		{"Content-Length", strconv.Itoa(len(content))},
	}
	if content != "" {
		h.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return h
}

// Validate rejects requests which would produce an ambiguous message.
func (r *Request) Validate() error {
	if r.Method == "" || !httpguts.ValidHeaderFieldName(r.Method) {
		return errors.Wrapf(ErrInvalidRequest, "method %q", r.Method)
	}
	if !strings.HasPrefix(r.Path, "/") || strings.ContainsAny(r.Path, " \r\n") {
		return errors.Wrapf(ErrInvalidRequest, "path %q", r.Path)
	}
	for _, f := range r.Header {
		if !httpguts.ValidHeaderFieldName(f.Name) {
			return errors.Wrapf(ErrInvalidRequest, "header name %q", f.Name)
		}
		if !httpguts.ValidHeaderFieldValue(f.Value) {
			return errors.Wrapf(ErrInvalidRequest, "header %s value %q", f.Name, f.Value)
		}
		if strings.EqualFold(f.Name, "Host") && !httpguts.ValidHostHeader(f.Value) {
			return errors.Wrapf(ErrInvalidRequest, "host %q", f.Value)
		}
	}
	return nil
}

// PreparedRequest is a Request together with where it is sent.
type PreparedRequest struct {
	*Request
	Target *Target
}

// Prepare decomposes rawURL and builds the request to send there. It does
// not touch the network.
func Prepare(method, rawURL string, form Form) (*PreparedRequest, error) {
	target, err := ParseTarget(rawURL)
	if err != nil {
		return nil, err
	}
	content := form.Encode()
	header := RequestHeader(content)
	header.Set("Host", target.NetLoc)
	req := &Request{
		Method:  method,
		Path:    target.Path,
		Header:  header,
		Content: content,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &PreparedRequest{Request: req, Target: target}, nil
}
