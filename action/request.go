package action

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/logger"
)

// HTTPHandler sends an HTTP request and returns an HTTP response,
// following policy (such as redirects, cookies, auth) as configured
// on the implementing HTTP client.
type HTTPHandler interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request sends an HTTP request each time its schedule fires. Responses
// with a status code in the 2xx and 3xx ranges are successful.
type Request struct {
	mtx        sync.Mutex
	client     HTTPHandler
	request    *http.Request
	logger     logger.Logger
	statusCode int
	status     Status
}

// NewRetryClient returns an HTTPHandler retrying failed requests up to
// three times with linear jitter backoff.
func NewRetryClient(timeout time.Duration) HTTPHandler {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Backoff = retryablehttp.LinearJitterBackoff
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = timeout
	return retryClient.StandardClient()
}

// NewRequest returns a new Request action. A nil client uses a retrying
// client with a 30 second timeout. The request must not carry a body.
func NewRequest(request *http.Request, client HTTPHandler, l logger.Logger) *Request {
	if client == nil {
		client = NewRetryClient(30 * time.Second)
	}
	if l == nil {
		l = logger.NoOpLogger{}
	}
	return &Request{
		client:  client,
		request: request,
		logger:  l,
		status:  StatusNA,
	}
}

// Action returns the every.Action sending the request.
func (r *Request) Action() every.Action {
	return r.Run
}

// Description returns the description of the Request action.
func (r *Request) Description() string {
	return fmt.Sprintf("Request::%s %s", r.request.Method, r.request.URL)
}

// Run sends the request with ctx and records the response status.
func (r *Request) Run(ctx context.Context, fireTime time.Time) {
	req := r.request.Clone(ctx)
	resp, err := r.client.Do(req)

	r.mtx.Lock()
	defer r.mtx.Unlock()
	if err != nil {
		r.statusCode = 0
		r.status = StatusFailure
		r.logger.Warn("Request failed.", "url", req.URL, "fire_time", fireTime, "error", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	r.statusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		r.status = StatusOK
		r.logger.Debug("Request completed.", "url", req.URL, "status", resp.StatusCode)
		return
	}
	r.status = StatusFailure
	r.logger.Warn("Request returned an error status.", "url", req.URL, "status", resp.StatusCode)
}

// StatusCode returns the HTTP status code of the latest response, or
// zero if the latest request failed.
func (r *Request) StatusCode() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.statusCode
}

// Status returns the status of the latest run.
func (r *Request) Status() Status {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.status
}
