// Package koreanbots implements the koreanbots.dev backend client.
// koreanbots speaks REST+JSON with the raw token in the Authorization header
// and signals rate limits with an x-ratelimit-reset timestamp header.
package koreanbots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/botlists/botlists/assets"
	"github.com/botlists/botlists/core"
	"github.com/botlists/botlists/internal/transport"
	"github.com/botlists/botlists/obs"
)

// Client implements core.Provider against koreanbots.
type Client struct {
	opts options
	api  *transport.Transport
}

var _ core.Provider = (*Client)(nil)

// New constructs a koreanbots client.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	api := transport.New(transport.Config{
		BaseURL:       o.baseURL,
		Token:         o.token,
		AuthHeader:    "Authorization",
		RetryAfter:    transport.RetryAfterReset("x-ratelimit-reset"),
		RefreshPeriod: o.refreshPeriod,
		Session:       o.session,
		Logger:        o.logger,
	})
	return &Client{opts: o, api: api}
}

func (c *Client) Name() string { return "koreanbots" }

func (c *Client) Capabilities() core.Capabilities {
	return core.Capabilities{
		Provider:         "koreanbots",
		Users:            true,
		Search:           true,
		Widgets:          true,
		MinStatsInterval: 180 * time.Second,
	}
}

func (c *Client) Close() error { return c.api.Close() }

func decodeData[T any](raw json.RawMessage, what string) (*T, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode koreanbots %s: %w", what, err)
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode koreanbots %s: %w", what, err)
	}
	return &out, nil
}

// Bot fetches one listed bot by ID. The endpoint is public: no token needed.
func (c *Client) Bot(ctx context.Context, botID int64) (_ *core.Bot, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.koreanbots.Bot",
		attribute.String("botlists.provider", "koreanbots"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.api.Get(ctx, fmt.Sprintf("/bots/%d", botID), nil)
	if err != nil {
		return nil, err
	}
	bot, err := decodeData[kbBot](data, "bot")
	if err != nil {
		return nil, err
	}
	return bot.toCore(), nil
}

// Stats publishes the guild count. koreanbots answers an unchanged count
// with a 400; that case is success with nothing updated, not a failure.
func (c *Client) Stats(ctx context.Context, botID int64, req core.StatsRequest) (_ *core.Stats, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.koreanbots.Stats",
		attribute.String("botlists.provider", "koreanbots"),
		attribute.Int64("botlists.bot_id", botID),
		attribute.Int("botlists.guild_count", req.GuildCount),
	)
	defer func() { recorder.End(err) }()

	data, err := c.api.Post(ctx, fmt.Sprintf("/bots/%d/stats", botID), map[string]any{"servers": req.GuildCount})
	if core.IsBadRequest(err) {
		return &core.Stats{Provider: "koreanbots", Servers: &req.GuildCount, Unchanged: true}, nil
	}
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode koreanbots stats: %w", err)
	}
	return &core.Stats{Provider: "koreanbots", Servers: &req.GuildCount, Message: env.Message}, nil
}

// Vote reports whether the user hearted the bot, with the last heart time
// when the service knows it.
func (c *Client) Vote(ctx context.Context, botID, userID int64) (_ *core.Vote, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.koreanbots.Vote",
		attribute.String("botlists.provider", "koreanbots"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	query := url.Values{"userID": []string{fmt.Sprint(userID)}}
	data, err := c.api.Get(ctx, fmt.Sprintf("/bots/%d/vote", botID), query)
	if err != nil {
		return nil, err
	}
	vote, err := decodeData[kbVote](data, "vote")
	if err != nil {
		return nil, err
	}
	return vote.toCore(), nil
}

// Votes is not part of the koreanbots API.
func (c *Client) Votes(ctx context.Context, botID int64) ([]core.VotedUser, error) {
	return nil, core.NewError(core.ErrNotSupported, "koreanbots does not expose a voter list")
}

// User fetches a user profile including owned bots.
func (c *Client) User(ctx context.Context, userID int64) (_ *core.User, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.koreanbots.User",
		attribute.String("botlists.provider", "koreanbots"),
		attribute.Int64("botlists.user_id", userID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.api.Get(ctx, fmt.Sprintf("/users/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	user, err := decodeData[kbUser](data, "user")
	if err != nil {
		return nil, err
	}
	return user.toCore(), nil
}

// Search queries the bot directory. The endpoint requires a query string;
// listings without one are not supported by the v2 API.
func (c *Client) Search(ctx context.Context, req core.SearchRequest) (_ *core.Search, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.koreanbots.Search",
		attribute.String("botlists.provider", "koreanbots"),
		attribute.String("botlists.query", req.Query),
	)
	defer func() { recorder.End(err) }()

	page := req.Page
	if page < 1 {
		page = 1
	}
	query := url.Values{
		"query": []string{req.Query},
		"page":  []string{fmt.Sprint(page)},
	}
	data, err := c.api.Get(ctx, "/search/bots", query)
	if err != nil {
		return nil, err
	}
	search, err := decodeData[kbSearch](data, "search")
	if err != nil {
		return nil, err
	}
	return search.toCore(), nil
}

// Widget builds the badge URL for a bot. No request is made until the asset
// is read or saved.
func (c *Client) Widget(botID int64, req core.WidgetRequest) (*assets.Widget, error) {
	kind := req.Kind
	if kind == "" {
		kind = core.WidgetVotes
	}
	switch kind {
	case core.WidgetVotes, core.WidgetServers, core.WidgetStatus:
	default:
		return nil, core.NewError(core.ErrNotSupported, fmt.Sprintf("koreanbots does not render %q widgets", kind))
	}
	query := url.Values{}
	if req.Style != "" {
		query.Set("style", string(req.Style))
	}
	return assets.NewWidget(c.opts.widgetBaseURL, fmt.Sprintf("/bots/%s/%d", kind, botID), query, "svg"), nil
}
