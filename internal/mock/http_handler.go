package mock

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
)

// HTTPHandler records requests and replies with a fixed status code.
type HTTPHandler struct {
	mtx        sync.Mutex
	StatusCode int
	Err        error
	requests   []*http.Request
}

// NewHTTPHandler returns a handler replying with the given status code.
func NewHTTPHandler(statusCode int) *HTTPHandler {
	return &HTTPHandler{StatusCode: statusCode}
}

// Do records req and returns the configured response or error.
func (h *HTTPHandler) Do(req *http.Request) (*http.Response, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	h.requests = append(h.requests, req)
	if h.Err != nil {
		return nil, h.Err
	}
	return &http.Response{
		StatusCode: h.StatusCode,
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

// Requests returns the recorded requests.
func (h *HTTPHandler) Requests() []*http.Request {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return append([]*http.Request(nil), h.requests...)
}

// ErrConnectionRefused is a canned transport error.
var ErrConnectionRefused = errors.New("connection refused")
