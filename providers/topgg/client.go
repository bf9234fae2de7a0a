// Package topgg implements the top.gg backend client. top.gg speaks
// REST+JSON with the raw API token in the Authorization header and signals
// rate limits with a Retry-After seconds header.
package topgg

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

const searchPageSize = 10

// Client implements core.Provider against top.gg.
type Client struct {
	opts options
	api  *transport.Transport
}

var _ core.Provider = (*Client)(nil)

// New constructs a top.gg client.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	api := transport.New(transport.Config{
		BaseURL:       o.baseURL,
		Token:         o.token,
		AuthHeader:    "Authorization",
		RetryAfter:    transport.RetryAfterSeconds("Retry-After"),
		RefreshPeriod: o.refreshPeriod,
		Session:       o.session,
		Logger:        o.logger,
	})
	return &Client{opts: o, api: api}
}

func (c *Client) Name() string { return "topgg" }

func (c *Client) Capabilities() core.Capabilities {
	return core.Capabilities{
		Provider:         "topgg",
		Votes:            true,
		Users:            true,
		Search:           true,
		Widgets:          true,
		Shards:           true,
		MinStatsInterval: 900 * time.Second,
	}
}

func (c *Client) Close() error { return c.api.Close() }

// Bot fetches one listed bot by ID.
func (c *Client) Bot(ctx context.Context, botID int64) (_ *core.Bot, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.topgg.Bot",
		attribute.String("botlists.provider", "topgg"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.api.Get(ctx, fmt.Sprintf("/bots/%d", botID), nil)
	if err != nil {
		return nil, err
	}
	var bot topggBot
	if err := json.Unmarshal(data, &bot); err != nil {
		return nil, fmt.Errorf("decode topgg bot: %w", err)
	}
	return bot.toCore(), nil
}

// Stats publishes the guild count, with optional shard metadata.
func (c *Client) Stats(ctx context.Context, botID int64, req core.StatsRequest) (_ *core.Stats, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.topgg.Stats",
		attribute.String("botlists.provider", "topgg"),
		attribute.Int64("botlists.bot_id", botID),
		attribute.Int("botlists.guild_count", req.GuildCount),
	)
	defer func() { recorder.End(err) }()

	body := map[string]any{"server_count": req.GuildCount}
	if req.ShardCount != nil {
		body["shard_count"] = *req.ShardCount
		if req.ShardID != nil {
			body["shard_id"] = *req.ShardID
		}
	}
	data, err := c.api.Post(ctx, fmt.Sprintf("/bots/%d/stats", botID), body)
	if err != nil {
		return nil, err
	}
	var ack topggStats
	if len(data) > 0 {
		if err := json.Unmarshal(data, &ack); err != nil {
			return nil, fmt.Errorf("decode topgg stats: %w", err)
		}
	}
	stats := ack.toCore()
	if stats.Servers == nil {
		stats.Servers = &req.GuildCount
	}
	if stats.ShardCount == nil {
		stats.ShardCount = req.ShardCount
	}
	return stats, nil
}

// Vote reports whether the user voted for the bot within the service's
// 12-hour vote window.
func (c *Client) Vote(ctx context.Context, botID, userID int64) (_ *core.Vote, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.topgg.Vote",
		attribute.String("botlists.provider", "topgg"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	query := url.Values{"userId": []string{fmt.Sprint(userID)}}
	data, err := c.api.Get(ctx, fmt.Sprintf("/bots/%d/check", botID), query)
	if err != nil {
		return nil, err
	}
	var vote topggVote
	if err := json.Unmarshal(data, &vote); err != nil {
		return nil, fmt.Errorf("decode topgg vote: %w", err)
	}
	return &core.Vote{Provider: "topgg", Voted: vote.Voted != 0}, nil
}

// Votes lists the last 100 voters.
func (c *Client) Votes(ctx context.Context, botID int64) (_ []core.VotedUser, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.topgg.Votes",
		attribute.String("botlists.provider", "topgg"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.api.Get(ctx, fmt.Sprintf("/bots/%d/votes", botID), nil)
	if err != nil {
		return nil, err
	}
	var voters []topggVotedUser
	if err := json.Unmarshal(data, &voters); err != nil {
		return nil, fmt.Errorf("decode topgg votes: %w", err)
	}
	out := make([]core.VotedUser, 0, len(voters))
	for _, voter := range voters {
		out = append(out, voter.toCore())
	}
	return out, nil
}

// User fetches a user profile.
func (c *Client) User(ctx context.Context, userID int64) (_ *core.User, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.topgg.User",
		attribute.String("botlists.provider", "topgg"),
		attribute.Int64("botlists.user_id", userID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.api.Get(ctx, fmt.Sprintf("/users/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	var user topggUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode topgg user: %w", err)
	}
	return user.toCore(), nil
}

// Search returns one page of the bot directory; an empty query lists bots in
// ranking order.
func (c *Client) Search(ctx context.Context, req core.SearchRequest) (_ *core.Search, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.topgg.Search",
		attribute.String("botlists.provider", "topgg"),
		attribute.String("botlists.query", req.Query),
	)
	defer func() { recorder.End(err) }()

	page := req.Page
	if page < 1 {
		page = 1
	}
	query := url.Values{
		"limit":  []string{fmt.Sprint(searchPageSize)},
		"offset": []string{fmt.Sprint((page - 1) * searchPageSize)},
	}
	if req.Query != "" {
		query.Set("search", req.Query)
	}
	data, err := c.api.Get(ctx, "/bots", query)
	if err != nil {
		return nil, err
	}
	var search topggSearch
	if err := json.Unmarshal(data, &search); err != nil {
		return nil, fmt.Errorf("decode topgg search: %w", err)
	}
	return search.toCore(), nil
}

// Widget builds the badge URL for a bot. No request is made until the asset
// is read or saved.
func (c *Client) Widget(botID int64, req core.WidgetRequest) (*assets.Widget, error) {
	path := fmt.Sprintf("/widget/%d", botID)
	switch req.Kind {
	case "":
		// Large card widget.
	case core.WidgetVotes:
		path = fmt.Sprintf("/widget/upvotes/%d", botID)
	case core.WidgetServers:
		path = fmt.Sprintf("/widget/servers/%d", botID)
	case core.WidgetStatus:
		path = fmt.Sprintf("/widget/status/%d", botID)
	default:
		return nil, core.NewError(core.ErrNotSupported, fmt.Sprintf("topgg does not render %q widgets", req.Kind))
	}
	return assets.NewWidget(c.opts.baseURL, path, nil, "svg"), nil
}
