package botlists

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botlists/botlists/core"
)

type fakeHost struct {
	botID  int64
	guilds int
	ready  chan struct{}
	closed chan struct{}
}

func newFakeHost(guilds int) *fakeHost {
	h := &fakeHost{botID: 1, guilds: guilds, ready: make(chan struct{}), closed: make(chan struct{})}
	close(h.ready)
	return h
}

func (h *fakeHost) BotID() int64            { return h.botID }
func (h *fakeHost) GuildCount() int         { return h.guilds }
func (h *fakeHost) Ready() <-chan struct{}  { return h.ready }
func (h *fakeHost) Closed() <-chan struct{} { return h.closed }

// statsProvider counts Stats calls and returns a scripted error per call.
type statsProvider struct {
	fakeProvider

	mu     sync.Mutex
	posts  int
	script []error
	posted chan struct{}
}

func newStatsProvider(site Website, interval time.Duration, script ...error) *statsProvider {
	p := &statsProvider{script: script, posted: make(chan struct{}, 16)}
	p.name = string(site)
	p.caps = core.Capabilities{Provider: string(site), MinStatsInterval: interval}
	return p
}

func (p *statsProvider) Stats(ctx context.Context, botID int64, req core.StatsRequest) (*core.Stats, error) {
	p.mu.Lock()
	n := p.posts
	p.posts++
	p.mu.Unlock()
	select {
	case p.posted <- struct{}{}:
	default:
	}
	if n < len(p.script) && p.script[n] != nil {
		return nil, p.script[n]
	}
	return &core.Stats{Provider: p.name, Servers: &req.GuildCount}, nil
}

func (p *statsProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posts
}

func waitPosted(t *testing.T, p *statsProvider) {
	t.Helper()
	select {
	case <-p.posted:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for a stats post")
	}
}

func statsClient(p *statsProvider) *Client {
	return New(WithLogger(quietLogger()), WithProvider(Website(p.name), p))
}

func TestNewAutoPosterRejectsShortInterval(t *testing.T) {
	c := statsClient(newStatsProvider(TopGG, 900*time.Second))

	_, err := NewAutoPoster(c, newFakeHost(10), WithAutoPostInterval(100*time.Second))
	require.ErrorIs(t, err, ErrIntervalTooShort)

	poster, err := NewAutoPoster(c, newFakeHost(10), WithAutoPostInterval(900*time.Second))
	require.NoError(t, err)
	require.NotNil(t, poster)
}

func TestNewAutoPosterDefaultInterval(t *testing.T) {
	c := statsClient(newStatsProvider(TopGG, 900*time.Second))

	poster, err := NewAutoPoster(c, newFakeHost(10))
	require.NoError(t, err)
	assert.Equal(t, DefaultAutoPostInterval, poster.interval)
}

func TestAutoPosterPostsAndStops(t *testing.T) {
	p := newStatsProvider(TopGG, 0)
	c := statsClient(p)

	poster, err := NewAutoPoster(c, newFakeHost(25), WithAutoPostInterval(time.Millisecond))
	require.NoError(t, err)

	poster.Start(context.Background())
	waitPosted(t, p)
	waitPosted(t, p)
	poster.Stop()

	assert.GreaterOrEqual(t, p.count(), 2)
	assert.NoError(t, poster.Err())

	select {
	case <-poster.Done():
	default:
		t.Fatalf("Done must be closed after Stop")
	}
}

func TestAutoPosterSurvivesRateLimit(t *testing.T) {
	rateLimited := core.NewError(core.ErrRateLimited, "slow down", core.WithStatus(429))
	p := newStatsProvider(TopGG, 0, rateLimited)
	c := statsClient(p)

	poster, err := NewAutoPoster(c, newFakeHost(25), WithAutoPostInterval(time.Millisecond))
	require.NoError(t, err)

	poster.Start(context.Background())
	waitPosted(t, p)
	waitPosted(t, p)
	poster.Stop()

	assert.GreaterOrEqual(t, p.count(), 2, "the cycle after a rate limit must still run")
	assert.NoError(t, poster.Err())
}

func TestAutoPosterStopsOnHardError(t *testing.T) {
	unauthorized := core.NewError(core.ErrUnauthorized, "bad token", core.WithStatus(401))
	p := newStatsProvider(TopGG, 0, unauthorized)
	c := statsClient(p)

	poster, err := NewAutoPoster(c, newFakeHost(25), WithAutoPostInterval(time.Millisecond))
	require.NoError(t, err)

	poster.Start(context.Background())
	select {
	case <-poster.Done():
	case <-time.After(time.Second):
		t.Fatalf("loop should terminate on a hard error")
	}

	assert.Equal(t, 1, p.count())
	assert.True(t, core.IsUnauthorized(poster.Err()))
}

func TestAutoPosterShardCallback(t *testing.T) {
	p := newStatsProvider(TopGG, 0)
	var got core.StatsRequest
	wrapped := &shardRecorder{statsProvider: p, got: &got}
	c := New(WithLogger(quietLogger()), WithProvider(TopGG, wrapped))

	poster, err := NewAutoPoster(c, newFakeHost(25),
		WithAutoPostInterval(time.Millisecond),
		WithAutoPostShards(func() (int, int, bool) { return 1, 4, true }),
	)
	require.NoError(t, err)

	poster.Start(context.Background())
	waitPosted(t, p)
	poster.Stop()

	require.NotNil(t, got.ShardCount)
	assert.Equal(t, 4, *got.ShardCount)
	require.NotNil(t, got.ShardID)
	assert.Equal(t, 1, *got.ShardID)
	assert.Equal(t, 25, got.GuildCount)
}

type shardRecorder struct {
	*statsProvider
	got *core.StatsRequest
}

func (r *shardRecorder) Stats(ctx context.Context, botID int64, req core.StatsRequest) (*core.Stats, error) {
	*r.got = req
	return r.statsProvider.Stats(ctx, botID, req)
}
