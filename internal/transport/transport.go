// Package transport implements the authenticated request pipeline shared by
// the listing-service backends: auth headers, JSON decoding, status-to-error
// mapping, bounded retry on rate limits and periodic session recycling.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/botlists/botlists/core"
	"github.com/botlists/botlists/internal/httpclient"
)

const (
	// DefaultRefreshPeriod bounds the age of one HTTP session before its
	// connection pool is torn down and rebuilt.
	DefaultRefreshPeriod = 300 * time.Second

	// DefaultMaxAttempts bounds the rate-limit retry loop, counting the
	// initial request.
	DefaultMaxAttempts = 5
)

// Config describes one listing-service endpoint.
type Config struct {
	BaseURL string

	// Token and the header it travels in. AuthScheme is an optional prefix
	// such as "Bot"; most services take the raw token.
	Token      string
	AuthHeader string
	AuthScheme string

	// RetryAfter reads the service's rate-limit signal from a 429 response.
	RetryAfter func(http.Header) time.Duration

	RefreshPeriod time.Duration
	MaxAttempts   int

	// Session is an optional pre-built HTTP client. It is still subject to
	// refresh once it exceeds RefreshPeriod.
	Session *http.Client

	// NewSession builds replacement sessions on refresh.
	NewSession func() *http.Client

	Logger logrus.FieldLogger
}

// Transport performs authenticated calls against one service.
type Transport struct {
	cfg Config
	log logrus.FieldLogger

	mu           sync.Mutex
	session      *http.Client
	sessionStart time.Time

	// sleep is swapped out by tests to observe backoff without waiting.
	sleep func(context.Context, time.Duration) error
}

// New builds a Transport, applying defaults for anything Config leaves zero.
func New(cfg Config) *Transport {
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "Authorization"
	}
	if cfg.RefreshPeriod == 0 {
		cfg.RefreshPeriod = DefaultRefreshPeriod
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.NewSession == nil {
		cfg.NewSession = func() *http.Client { return httpclient.New() }
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	t := &Transport{cfg: cfg, log: log, sleep: sleepContext}
	if cfg.Session != nil {
		t.session = cfg.Session
		t.sessionStart = time.Now()
	}
	return t
}

// Close releases the current session's idle connections.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil {
		t.session.CloseIdleConnections()
		t.session = nil
	}
	return nil
}

// getSession returns the current session, replacing it first when it is
// absent or older than the refresh period.
func (t *Transport) getSession() *http.Client {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil || time.Since(t.sessionStart) >= t.cfg.RefreshPeriod {
		if t.session != nil {
			t.session.CloseIdleConnections()
		}
		t.session = t.cfg.NewSession()
		t.sessionStart = time.Now()
	}
	return t.session
}

// Do issues one request and returns the decoded JSON payload. Bodies are
// decoded as JSON regardless of the declared content type; the services
// occasionally mislabel JSON responses as text.
func (t *Transport) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	reqURL := t.cfg.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	var lastDelay time.Duration
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if t.cfg.Token != "" {
			value := t.cfg.Token
			if t.cfg.AuthScheme != "" {
				value = t.cfg.AuthScheme + " " + value
			}
			req.Header.Set(t.cfg.AuthHeader, value)
		}

		resp, err := t.getSession().Do(req)
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		t.log.WithFields(logrus.Fields{
			"method": method,
			"url":    reqURL,
			"status": resp.StatusCode,
		}).Debug("listing request")

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := time.Second
			if t.cfg.RetryAfter != nil {
				if d := t.cfg.RetryAfter(resp.Header); d > 0 {
					delay = d
				}
			}
			lastDelay = delay
			if attempt >= t.cfg.MaxAttempts {
				return nil, core.NewError(core.ErrRateLimited,
					fmt.Sprintf("rate limited after %d attempts", attempt),
					core.WithStatus(resp.StatusCode),
					core.WithRetryAfter(lastDelay.Seconds()),
					core.WithDetails(decodeDetails(data)))
			}
			t.log.WithFields(logrus.Fields{
				"url":     reqURL,
				"delay":   delay,
				"attempt": attempt,
			}).Warn("rate limited, backing off")
			if err := t.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return json.RawMessage(data), nil
		}
		return nil, statusError(resp.StatusCode, data)
	}
}

// Get issues a GET request.
func (t *Transport) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return t.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (t *Transport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return t.Do(ctx, http.MethodPost, path, nil, body)
}

func statusError(status int, body []byte) *core.APIError {
	details := decodeDetails(body)
	message := http.StatusText(status)
	for _, key := range []string{"message", "error"} {
		if v, ok := details[key].(string); ok && v != "" {
			message = v
			break
		}
	}
	code := core.ErrHTTP
	switch status {
	case http.StatusBadRequest:
		code = core.ErrBadRequest
	case http.StatusUnauthorized:
		code = core.ErrUnauthorized
	case http.StatusForbidden:
		code = core.ErrForbidden
	case http.StatusNotFound:
		code = core.ErrNotFound
	case http.StatusMethodNotAllowed:
		code = core.ErrMethodNotAllowed
	}
	return core.NewError(code, fmt.Sprintf("%d %s", status, message),
		core.WithStatus(status), core.WithDetails(details))
}

func decodeDetails(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}
	var details map[string]any
	if err := json.Unmarshal(body, &details); err != nil {
		return map[string]any{"body": string(body)}
	}
	return details
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryAfterSeconds reads a direct seconds value from the named header.
func RetryAfterSeconds(name string) func(http.Header) time.Duration {
	return func(h http.Header) time.Duration {
		raw := h.Get(name)
		if raw == "" {
			return 0
		}
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil || seconds <= 0 {
			return 0
		}
		return time.Duration(seconds * float64(time.Second))
	}
}

// RetryAfterReset reads a unix reset timestamp from the named header and
// converts it to a delay from now.
func RetryAfterReset(name string) func(http.Header) time.Duration {
	return func(h http.Header) time.Duration {
		raw := h.Get(name)
		if raw == "" {
			return 0
		}
		reset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0
		}
		delay := time.Until(time.Unix(reset, 0))
		if delay < 0 {
			return 0
		}
		return delay
	}
}
