package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankli0324/go-httpclient/internal/model"
)

var buildShouldBe = map[string]struct {
	req  model.Request
	data string
}{
	"NoHeaders": {
		req:  model.Request{Method: "GET", Path: "/"},
		data: "GET / HTTP/1.1\r\n\r\n",
	},
	"HeadersInOrder": {
		req: model.Request{
			Method: "GET", Path: "/x?a=1",
			Header: model.Header{{"Connection", "close"}, {"Host", "example.com:8080"}},
		},
		data: "GET /x?a=1 HTTP/1.1\r\nConnection: close\r\nHost: example.com:8080\r\n\r\n",
	},
	"ContentHasNoTerminator": {
		req: model.Request{
			Method: "POST", Path: "/form",
			Header:  model.Header{{"Content-Length", "7"}},
			Content: "a=1&b=2",
		},
		data: "POST /form HTTP/1.1\r\nContent-Length: 7\r\n\r\na=1&b=2",
	},
	"HeaderNotCanonicalized": {
		req: model.Request{
			Method: "GET", Path: "/",
			Header: model.Header{{"x-123-vv", "1"}},
		},
		data: "GET / HTTP/1.1\r\nx-123-vv: 1\r\n\r\n",
	},
}

func TestRequestBuild(t *testing.T) {
	for name, cas := range buildShouldBe {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			got := tCase.req.Build()
			assert.Equal(t, tCase.data, got)

			head, content, found := strings.Cut(got, "\r\n\r\n")
			assert.True(t, found)
			assert.Equal(t, tCase.req.Content, content)
			// request line plus one line per field
			assert.Len(t, strings.Split(head, "\r\n"), 1+tCase.req.Header.Len())
		})
	}
}

func TestHeaderSet(t *testing.T) {
	var h model.Header
	h.Set("Connection", "close")
	h.Set("Host", "a")
	h.Set("Connection", "keep-alive")

	assert.Equal(t, model.Header{{"Connection", "keep-alive"}, {"Host", "a"}}, h)
	v, ok := h.Get("Host")
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = h.Get("host")
	assert.False(t, ok)
}

func TestRequestsDoNotShareHeader(t *testing.T) {
	a, b := model.Request{}, model.Request{}
	a.Header.Set("X-A", "1")
	assert.Equal(t, 0, b.Header.Len())

	h1, h2 := model.RequestHeader(""), model.RequestHeader("")
	h1.Set("Host", "x")
	_, ok := h2.Get("Host")
	assert.False(t, ok)
}

func TestCode(t *testing.T) {
	n, ok := model.ValidCode(404).Int()
	assert.True(t, ok)
	assert.Equal(t, 404, n)
	assert.Equal(t, "404", model.ValidCode(404).String())

	assert.False(t, model.NoCode.Valid())
	assert.Equal(t, "None", model.NoCode.String())
	assert.NotEqual(t, model.ValidCode(0), model.NoCode)
}

func TestResponseString(t *testing.T) {
	r := &model.Response{Code: model.ValidCode(200), Body: "hi"}
	assert.Equal(t, "Status code: 200\n\nhi", r.String())

	r = &model.Response{Code: model.NoCode}
	assert.Equal(t, "Status code: None\n\n", r.String())
}
