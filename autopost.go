package botlists

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/botlists/botlists/core"
)

// Host exposes the running bot to the auto poster. A Discord gateway
// session wrapped in this interface is enough; tests can supply a fake.
type Host interface {
	// BotID is the application's own user ID.
	BotID() int64
	// GuildCount is the number of guilds the bot currently serves.
	GuildCount() int
	// Ready is closed once the session is connected and counts are
	// meaningful.
	Ready() <-chan struct{}
	// Closed is closed when the session shuts down for good.
	Closed() <-chan struct{}
}

// DefaultAutoPostInterval is used when no interval option is given.
const DefaultAutoPostInterval = time.Hour

// AutoPostOption configures an AutoPoster.
type AutoPostOption func(*autoPostOptions)

type autoPostOptions struct {
	interval time.Duration
	shards   func() (shardID, shardCount int, ok bool)
}

// WithAutoPostInterval sets the delay between stats updates.
func WithAutoPostInterval(d time.Duration) AutoPostOption {
	return func(o *autoPostOptions) { o.interval = d }
}

// WithAutoPostShards supplies shard information for each update. The
// callback returns ok=false to post without shard fields.
func WithAutoPostShards(fn func() (shardID, shardCount int, ok bool)) AutoPostOption {
	return func(o *autoPostOptions) { o.shards = fn }
}

// AutoPoster periodically publishes the host's guild count to every
// configured listing site.
type AutoPoster struct {
	client   *Client
	host     Host
	interval time.Duration
	shards   func() (int, int, bool)
	logger   logrus.FieldLogger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	lastErr error
}

// NewAutoPoster validates the interval against the strictest limit of
// the configured sites and returns a stopped poster. Call Start to
// begin posting.
func NewAutoPoster(client *Client, host Host, opts ...AutoPostOption) (*AutoPoster, error) {
	o := autoPostOptions{interval: DefaultAutoPostInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if floor, site := client.minStatsInterval(); o.interval < floor {
		return nil, fmt.Errorf("%w: %s requires at least %s, got %s",
			ErrIntervalTooShort, site, floor, o.interval)
	}
	return &AutoPoster{
		client:   client,
		host:     host,
		interval: o.interval,
		shards:   o.shards,
		logger:   client.logger,
	}, nil
}

// Start launches the posting loop. It returns immediately; the loop
// runs until Stop is called, the context is cancelled, or the host
// closes. Starting an already running poster is a no-op.
func (p *AutoPoster) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

// Stop halts the loop and waits for the in-flight update, if any, to
// finish. Safe to call on a poster that never started.
func (p *AutoPoster) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the loop has exited. Nil before Start.
func (p *AutoPoster) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Err reports the error that terminated the loop, if any. Rate limit
// errors are retried in place and never recorded here.
func (p *AutoPoster) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *AutoPoster) run(ctx context.Context) {
	defer close(p.done)

	select {
	case <-p.host.Ready():
	case <-p.host.Closed():
		return
	case <-ctx.Done():
		return
	}

	for {
		if err := p.post(ctx); err != nil {
			if core.IsRateLimited(err) {
				p.logger.WithError(err).Warn("stats update rate limited, will retry next cycle")
			} else {
				p.logger.WithError(err).Error("stats update failed, stopping auto post")
				p.mu.Lock()
				p.lastErr = err
				p.mu.Unlock()
				return
			}
		}

		select {
		case <-time.After(p.interval):
		case <-p.host.Closed():
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *AutoPoster) post(ctx context.Context) error {
	req := core.StatsRequest{GuildCount: p.host.GuildCount()}
	if p.shards != nil {
		if id, count, ok := p.shards(); ok {
			req.ShardID = &id
			req.ShardCount = &count
		}
	}
	res, err := p.client.Stats(ctx, p.host.BotID(), req)
	if err != nil {
		return err
	}
	fields := logrus.Fields{"guilds": req.GuildCount}
	if res.KoreanBots != nil && res.KoreanBots.Unchanged {
		fields["koreanbots"] = "unchanged"
	}
	p.logger.WithFields(fields).Info("published server count")
	return nil
}
