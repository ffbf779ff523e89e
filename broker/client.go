package broker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vingd/internal/cryptox"
	"github.com/dmitrijs2005/vingd/internal/logging"
	"github.com/dmitrijs2005/vingd/internal/netx"
)

// Environment is a pair of broker endpoints: the REST backend and the user
// facing frontend used to build order and voucher links.
type Environment struct {
	Backend  string
	Frontend string
}

var (
	Production = Environment{
		Backend:  "https://api.vingd.com/broker/v1",
		Frontend: "https://www.vingd.com",
	}
	Sandbox = Environment{
		Backend:  "https://api.vingd.com/sandbox/broker/v1",
		Frontend: "http://www.sandbox.vingd.com",
	}
)

// Default relative expiries.
const (
	DefaultOrderExpiry   = "+15 minutes"
	DefaultVoucherExpiry = "+1 month"
)

// sender is the transport contract; *netx.Transport implements it.
type sender interface {
	Send(ctx context.Context, r *netx.Request) (*netx.Response, error)
}

type settings struct {
	transport netx.Options
	sender    sender
	logger    logging.Logger
}

type Option func(*settings)

// WithConnectTimeout bounds connection establishment. Default 5s.
func WithConnectTimeout(d time.Duration) Option {
	return func(s *settings) { s.transport.ConnectTimeout = d }
}

// WithMaxRedirects bounds the redirects followed per request. Default 5.
func WithMaxRedirects(n int) Option {
	return func(s *settings) { s.transport.MaxRedirects = n }
}

// WithInsecureSkipVerify disables TLS certificate verification. Only for
// test deployments.
func WithInsecureSkipVerify(skip bool) Option {
	return func(s *settings) { s.transport.InsecureSkipVerify = skip }
}

func WithUserAgent(ua string) Option {
	return func(s *settings) { s.transport.UserAgent = ua }
}

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func withSender(snd sender) Option {
	return func(s *settings) { s.sender = snd }
}

// Client talks to one broker deployment on behalf of one account. It is
// safe for concurrent use; each method performs exactly one blocking
// request.
type Client struct {
	mu        sync.RWMutex
	apiKey    string
	apiSecret string
	backend   string
	frontend  string

	transport sender
	logger    logging.Logger
}

// New creates a client for the account identified by username and password.
// Only a digest of the password is retained; the caller may wipe password
// once New returns. Empty env fields select Production.
func New(username string, password []byte, env Environment, opts ...Option) *Client {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.sender == nil {
		s.sender = netx.New(s.transport)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}

	c := &Client{transport: s.sender, logger: s.logger}
	c.Init(username, password, env)
	return c
}

// Init replaces the credentials and endpoints of c.
func (c *Client) Init(username string, password []byte, env Environment) {
	backend := strings.TrimRight(env.Backend, "/")
	if backend == "" {
		backend = Production.Backend
	}
	frontend := strings.TrimRight(env.Frontend, "/")
	if frontend == "" {
		frontend = Production.Frontend
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = username
	c.apiSecret = cryptox.HashSecret(password)
	c.backend = backend
	c.frontend = frontend
}

// Endpoints reports the environment c currently talks to.
func (c *Client) Endpoints() Environment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Environment{Backend: c.backend, Frontend: c.frontend}
}

func (c *Client) session() (key, secret, backend, frontend string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey, c.apiSecret, c.backend, c.frontend
}
