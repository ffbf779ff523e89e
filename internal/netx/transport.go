// Package netx is the HTTP layer of the broker client: a single-shot
// request/response transport with basic auth, bounded redirects, configurable
// TLS verification and request metrics, plus small URL helpers.
package netx

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vingd/internal/common"
)

var ErrTooManyRedirects = errors.New("too many redirects")

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Options tunes a Transport. Zero values select the defaults.
type Options struct {
	ConnectTimeout     time.Duration
	MaxRedirects       int
	InsecureSkipVerify bool
	UserAgent          string
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = common.DefaultConnectTimeoutSeconds * time.Second
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = common.DefaultMaxRedirects
	}
	if o.UserAgent == "" {
		o.UserAgent = common.UserAgent
	}
	return o
}

type Request struct {
	Method   string
	URL      string
	Header   http.Header
	Body     []byte
	Username string
	Password string
}

// Response is a fully read HTTP response. Header names are lowercased and
// repeated headers are merged into one list in arrival order.
type Response struct {
	Status        int
	StatusMessage string
	Headers       map[string][]string
	Cookies       []string
	Body          []byte
}

// Header returns the first value of the named header.
func (r *Response) Header(name string) string {
	v := r.Headers[strings.ToLower(name)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

type Transport struct {
	client    *http.Client
	userAgent string
}

// New builds a Transport. The underlying http.Client is shared by every
// Send call and is safe for concurrent use.
func New(opts Options) *Transport {
	opts = opts.withDefaults()

	dialer := &net.Dialer{Timeout: opts.ConnectTimeout}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: opts.ConnectTimeout,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify}, //nolint:gosec
	}

	maxRedirects := opts.MaxRedirects
	client := &http.Client{
		Transport: tr,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}

	return &Transport{client: client, userAgent: opts.UserAgent}
}

// Send performs one request and reads the whole response body. Any HTTP
// status is a successful Send; only failures to obtain a response are
// returned as *TransportError.
func (t *Transport) Send(ctx context.Context, r *Request) (*Response, error) {
	start := time.Now()

	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: r.URL, Err: err}
	}
	for name, values := range r.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("User-Agent", t.userAgent)
	if r.Username != "" {
		req.SetBasicAuth(r.Username, r.Password)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		observe(r.Method, "error", start)
		return nil, &TransportError{Method: r.Method, URL: r.URL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(r.Method, "error", start)
		return nil, &TransportError{Method: r.Method, URL: r.URL, Err: fmt.Errorf("read body: %w", err)}
	}
	observe(r.Method, strconv.Itoa(resp.StatusCode), start)

	headers := make(map[string][]string, len(resp.Header))
	for name, values := range resp.Header {
		key := strings.ToLower(name)
		headers[key] = append(headers[key], values...)
	}

	return &Response{
		Status:        resp.StatusCode,
		StatusMessage: statusMessage(resp),
		Headers:       headers,
		Cookies:       resp.Header.Values("Set-Cookie"),
		Body:          data,
	}, nil
}

// statusMessage extracts the reason phrase from "404 Not Found".
func statusMessage(resp *http.Response) string {
	msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return msg
}
