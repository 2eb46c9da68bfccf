package http

import (
	"github.com/frankli0324/go-httpclient/internal"
	"github.com/frankli0324/go-httpclient/internal/dialer"
	"github.com/frankli0324/go-httpclient/internal/model"
	"github.com/frankli0324/go-httpclient/internal/transport"
)

type Client = internal.Client
type Middleware = internal.Middleware
type Handler = internal.Handler

type Request = model.Request
type PreparedRequest = model.PreparedRequest
type Response = model.Response
type Code = model.Code
type Header = model.Header
type Field = model.Field
type Form = model.Form
type Target = model.Target

type Dialer = dialer.Dialer
type CoreDialer = dialer.CoreDialer
type ResolveConfig = dialer.ResolveConfig

var (
	NoCode    = model.NoCode
	ValidCode = model.ValidCode
	ParseForm = model.ParseForm

	ErrMalformedURL     = model.ErrMalformedURL
	ErrInvalidRequest   = model.ErrInvalidRequest
	ErrResponseTooLarge = transport.ErrResponseTooLarge
)
