package koreanbots

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Option func(*options)

type options struct {
	token         string
	baseURL       string
	widgetBaseURL string
	session       *http.Client
	refreshPeriod time.Duration
	logger        logrus.FieldLogger
}

func defaultOptions() options {
	return options{
		baseURL:       "https://koreanbots.dev/api/v2",
		widgetBaseURL: "https://koreanbots.dev/api/widget",
	}
}

// WithToken sets the koreanbots API token.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithWidgetBaseURL overrides the widget endpoint.
func WithWidgetBaseURL(url string) Option {
	return func(o *options) { o.widgetBaseURL = url }
}

// WithSession provides a pre-built HTTP client session.
func WithSession(session *http.Client) Option {
	return func(o *options) { o.session = session }
}

// WithRefreshPeriod overrides how long one session is kept before its
// connection pool is recycled.
func WithRefreshPeriod(d time.Duration) Option {
	return func(o *options) { o.refreshPeriod = d }
}

// WithLogger injects the logger used for request and backoff lines.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) { o.logger = logger }
}
