package botlists

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/botlists/botlists/core"
)

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	koreanbotsToken string
	topggToken      string
	uniquebotsToken string

	session       *http.Client
	refreshPeriod time.Duration
	logger        logrus.FieldLogger

	providers map[Website]core.Provider
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		logger:    logrus.StandardLogger(),
		providers: map[Website]core.Provider{},
	}
}

// WithKoreanBotsToken activates the koreanbots backend.
func WithKoreanBotsToken(token string) ClientOption {
	return func(o *clientOptions) { o.koreanbotsToken = token }
}

// WithTopGGToken activates the top.gg backend.
func WithTopGGToken(token string) ClientOption {
	return func(o *clientOptions) { o.topggToken = token }
}

// WithUniqueBotsToken activates the UniqueBots backend.
func WithUniqueBotsToken(token string) ClientOption {
	return func(o *clientOptions) { o.uniquebotsToken = token }
}

// WithSession provides a pre-built HTTP client shared by every backend
// transport instead of one pool per backend.
func WithSession(session *http.Client) ClientOption {
	return func(o *clientOptions) { o.session = session }
}

// WithRefreshPeriod overrides how long backend sessions are kept before
// their connection pools are recycled.
func WithRefreshPeriod(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.refreshPeriod = d }
}

// WithLogger injects the logger handed down to every backend.
func WithLogger(logger logrus.FieldLogger) ClientOption {
	return func(o *clientOptions) { o.logger = logger }
}

// WithProvider registers a backend instance directly, overriding token
// construction for that website. Intended for custom configurations and
// tests.
func WithProvider(site Website, provider core.Provider) ClientOption {
	return func(o *clientOptions) { o.providers[site] = provider }
}
