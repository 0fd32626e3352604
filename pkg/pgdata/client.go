// Package pgdata is a client for the pgdata service, which serves PV system
// metadata and measured or forecast time series (generation, irradiation,
// wind, temperature) as JSON over HTTPS.
//
// A Client must be opened before use and closed afterwards:
//
//	c, err := pgdata.New("https://pgdata.example.com", 443, pgdata.TokenCredentials{Token: tok})
//	if err != nil {
//		return err
//	}
//	err = c.Session(ctx, func(ctx context.Context) error {
//		systems, err := c.GetSystems(ctx)
//		...
//	})
package pgdata

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/raterudder/pgdata/pkg/common"
	"github.com/raterudder/pgdata/pkg/log"
)

const (
	acceptHeader    = "application/json; version=1.0"
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 10 * time.Second
)

type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateAuthenticated
	stateClosed
)

func (s sessionState) String() string {
	switch s {
	case stateUnauthenticated:
		return "unauthenticated"
	case stateAuthenticated:
		return "authenticated"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client talks to one pgdata host with one set of credentials. The session
// moves from unauthenticated to authenticated on Open and to closed on Close;
// a closed client cannot be reopened.
type Client struct {
	baseURL    *url.URL
	creds      Credentials
	timeout    time.Duration
	httpClient *http.Client
	rest       *resty.Client

	mu    sync.Mutex
	state sessionState
	token string
}

var _ API = (*Client)(nil)

// Option configures a Client in New.
type Option func(*Client) error

// WithHTTPClient uses hc for all requests. WithTimeout has no effect on a
// client supplied this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default http client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}

// New returns an unopened Client for host and port. host may include a
// scheme (https is assumed otherwise) and a path prefix; any port in host is
// replaced by port. No request is made until Open.
func New(host string, port int, creds Credentials, opts ...Option) (*Client, error) {
	c := &Client{}
	if err := c.init(host, port, creds, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) init(host string, port int, creds Credentials, opts ...Option) error {
	base, err := parseBaseURL(host, port)
	if err != nil {
		return err
	}
	if creds == nil {
		return fmt.Errorf("%w: missing credentials", ErrConfiguration)
	}
	if err := creds.validate(); err != nil {
		return err
	}

	c.baseURL = base
	c.creds = creds
	c.timeout = defaultTimeout
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}
	if c.httpClient == nil {
		c.httpClient = common.HTTPClient(c.timeout)
	}

	c.rest = resty.NewWithClient(c.httpClient).
		SetBaseURL(base.String()).
		SetHeader("Accept", acceptHeader).
		SetLogger(restyLogger{})
	return nil
}

func parseBaseURL(host string, port int) (*url.URL, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrConfiguration)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%w: invalid port %d", ErrConfiguration, port)
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse host (%s): %w", ErrConfiguration, host, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrConfiguration, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing hostname in %s", ErrConfiguration, host)
	}
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the scheme, host, port and path prefix requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Open authenticates the session. Password credentials are exchanged for a
// token; a token is adopted as is. Opening an open session does nothing.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateAuthenticated:
		return nil
	case stateClosed:
		return fmt.Errorf("%w: client is closed", ErrAuthentication)
	}

	switch creds := c.creds.(type) {
	case TokenCredentials:
		log.Ctx(ctx).DebugContext(ctx, "using pgdata token", slog.String("baseURL", c.baseURL.String()))
		c.token = creds.Token
	case PasswordCredentials:
		token, err := c.login(ctx, creds)
		if err != nil {
			c.httpClient.CloseIdleConnections()
			return err
		}
		c.token = token
	default:
		return fmt.Errorf("%w: unsupported credentials %T", ErrConfiguration, creds)
	}
	c.state = stateAuthenticated
	return nil
}

// Close ends the session and releases idle connections. It always succeeds
// and may be called more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.state = stateClosed
	// a Configured client has no http client until flags are parsed
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

// Session opens the client, runs fn and closes the client however fn exits,
// including by panic.
func (c *Client) Session(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Open(ctx); err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx)
}

func (c *Client) sessionToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateAuthenticated:
		return c.token, nil
	case stateClosed:
		return "", fmt.Errorf("%w: session is closed", ErrAuthentication)
	default:
		return "", fmt.Errorf("%w: session not open", ErrAuthentication)
	}
}

// restyLogger routes resty's own warnings into the default logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Ctx(context.Background()).Error(fmt.Sprintf(format, v...), slog.String("component", "resty"))
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Ctx(context.Background()).Warn(fmt.Sprintf(format, v...), slog.String("component", "resty"))
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Ctx(context.Background()).Debug(fmt.Sprintf(format, v...), slog.String("component", "resty"))
}
