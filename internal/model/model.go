package model

import (
	"strconv"
	"strings"
)

// Field is a single name/value pair, used both for request header fields
// and for form arguments.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered list of header fields. Fields are serialized in
// insertion order so that the bytes on the wire are deterministic.
type Header []Field

// Set replaces the value of the field named name, or appends a new field
// if there is none. Names are compared exactly.
func (h *Header) Set(name, value string) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Field{name, value})
}

func (h Header) Get(name string) (string, bool) {
	for _, f := range h {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (h Header) Len() int { return len(h) }

type Request struct {
	Method  string
	Path    string
	Header  Header
	Content string
}

// Build returns the exact text sent on the wire, e.g.:
//
//	POST /form HTTP/1.1\r\n
//	Connection: close\r\n
//	Content-Length: 3\r\n
//	\r\n
//	a=1
//
// the content is appended as is, without a trailing CRLF.
func (r *Request) Build() string {
	var sb strings.Builder
	sb.WriteString(r.Method)
	sb.WriteByte(' ')
	sb.WriteString(r.Path)
	sb.WriteString(" HTTP/1.1\r\n")
	for _, f := range r.Header {
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(r.Content)
	return sb.String()
}

// Code is a response status code which may be absent when the status line
// could not be parsed.
type Code struct {
	n     int
	valid bool
}

// NoCode is the absent status code.
var NoCode = Code{}

func ValidCode(n int) Code { return Code{n: n, valid: true} }

func (c Code) Int() (int, bool) { return c.n, c.valid }

func (c Code) Valid() bool { return c.valid }

func (c Code) String() string {
	if !c.valid {
		return "None"
	}
	return strconv.Itoa(c.n)
}

type Response struct {
	Code Code
	Body string
}

func (r *Response) String() string {
	return "Status code: " + r.Code.String() + "\n\n" + r.Body
}
