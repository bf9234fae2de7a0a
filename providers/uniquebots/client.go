// Package uniquebots implements the UniqueBots backend client. UniqueBots
// exposes a single GraphQL-over-HTTP endpoint with a `Bot <token>`
// Authorization scheme; every operation is a POST of {query, variables}.
package uniquebots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/botlists/botlists/assets"
	"github.com/botlists/botlists/core"
	"github.com/botlists/botlists/internal/transport"
	"github.com/botlists/botlists/obs"
)

// Client implements core.Provider against UniqueBots.
type Client struct {
	opts options
	api  *transport.Transport
}

var _ core.Provider = (*Client)(nil)

// New constructs a UniqueBots client.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	api := transport.New(transport.Config{
		BaseURL:       o.baseURL,
		Token:         o.token,
		AuthHeader:    "Authorization",
		AuthScheme:    "Bot",
		RetryAfter:    transport.RetryAfterSeconds("Retry-After"),
		RefreshPeriod: o.refreshPeriod,
		Session:       o.session,
		Logger:        o.logger,
	})
	return &Client{opts: o, api: api}
}

func (c *Client) Name() string { return "uniquebots" }

func (c *Client) Capabilities() core.Capabilities {
	return core.Capabilities{
		Provider:         "uniquebots",
		Votes:            true,
		Users:            true,
		MinStatsInterval: 900 * time.Second,
	}
}

func (c *Client) Close() error { return c.api.Close() }

// query posts one GraphQL operation and unwraps the data envelope.
func (c *Client) query(ctx context.Context, body string, vars ...Variable) (json.RawMessage, error) {
	req, err := newRequest(body, vars...)
	if err != nil {
		return nil, err
	}
	data, err := c.api.Post(ctx, "", req)
	if err != nil {
		return nil, err
	}
	var env gqlEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}
	if len(env.Errors) > 0 {
		return nil, core.NewError(core.ErrHTTP, "graphql: "+env.Errors[0].Message)
	}
	return env.Data, nil
}

const botFields = `id name avatarURL trusted discordVerified guilds status brief description ` +
	`invite website support git prefix library { name } categories { name id } slug premium`

// Bot fetches one listed bot by ID.
func (c *Client) Bot(ctx context.Context, botID int64) (_ *core.Bot, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.uniquebots.Bot",
		attribute.String("botlists.provider", "uniquebots"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.query(ctx,
		`{ bot (id: $bot_id) { `+botFields+` owner { id } } }`,
		Var("bot_id", fmt.Sprint(botID)),
	)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Bot *ubBot `json:"bot"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode uniquebots bot: %w", err)
	}
	if payload.Bot == nil {
		return nil, core.NewError(core.ErrNotFound, fmt.Sprintf("bot %d not listed", botID))
	}
	return payload.Bot.toCore(), nil
}

// Stats publishes the guild count through the guilds(patch:) mutation field.
func (c *Client) Stats(ctx context.Context, botID int64, req core.StatsRequest) (_ *core.Stats, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.uniquebots.Stats",
		attribute.String("botlists.provider", "uniquebots"),
		attribute.Int64("botlists.bot_id", botID),
		attribute.Int("botlists.guild_count", req.GuildCount),
	)
	defer func() { recorder.End(err) }()

	data, err := c.query(ctx,
		`{ bot (id: $bot_id) { guilds(patch: $guild_count) } }`,
		Var("bot_id", fmt.Sprint(botID)),
		Var("guild_count", req.GuildCount),
	)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Bot *ubStats `json:"bot"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode uniquebots stats: %w", err)
	}
	stats := &core.Stats{Provider: "uniquebots"}
	if payload.Bot != nil {
		stats.Servers = &payload.Bot.Guilds
	}
	return stats, nil
}

// Vote reports whether the user clicked the bot's heart.
func (c *Client) Vote(ctx context.Context, botID, userID int64) (_ *core.Vote, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.uniquebots.Vote",
		attribute.String("botlists.provider", "uniquebots"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.query(ctx,
		`{ bot (id: $bot_id) { heartClicked(user: $user_id) } }`,
		Var("bot_id", fmt.Sprint(botID)),
		Var("user_id", fmt.Sprint(userID)),
	)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Bot *ubVote `json:"bot"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode uniquebots vote: %w", err)
	}
	vote := &core.Vote{Provider: "uniquebots"}
	if payload.Bot != nil {
		vote.Voted = payload.Bot.HeartClicked
	}
	return vote, nil
}

// Votes lists everyone who hearted the bot.
func (c *Client) Votes(ctx context.Context, botID int64) (_ []core.VotedUser, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.uniquebots.Votes",
		attribute.String("botlists.provider", "uniquebots"),
		attribute.Int64("botlists.bot_id", botID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.query(ctx,
		`{ bot (id: $bot_id) { hearts { from { id tag avatarURL } } } }`,
		Var("bot_id", fmt.Sprint(botID)),
	)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Bot *struct {
			Hearts []ubHeart `json:"hearts"`
		} `json:"bot"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode uniquebots votes: %w", err)
	}
	if payload.Bot == nil {
		return nil, core.NewError(core.ErrNotFound, fmt.Sprintf("bot %d not listed", botID))
	}
	out := make([]core.VotedUser, 0, len(payload.Bot.Hearts))
	for _, heart := range payload.Bot.Hearts {
		out = append(out, heart.From.toVotedUser())
	}
	return out, nil
}

// User fetches a profile with its owned bots. The expansion is one level
// deep: owned bots list their owners as bare IDs only.
func (c *Client) User(ctx context.Context, userID int64) (_ *core.User, err error) {
	ctx, recorder := obs.StartRequest(ctx, "providers.uniquebots.User",
		attribute.String("botlists.provider", "uniquebots"),
		attribute.Int64("botlists.user_id", userID),
	)
	defer func() { recorder.End(err) }()

	data, err := c.query(ctx,
		`{ profile (id: $user_id) { id tag avatarURL admin description bots { `+botFields+` owner { id } } } }`,
		Var("user_id", fmt.Sprint(userID)),
	)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Profile *ubProfile `json:"profile"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode uniquebots profile: %w", err)
	}
	if payload.Profile == nil {
		return nil, core.NewError(core.ErrNotFound, fmt.Sprintf("profile %d not listed", userID))
	}
	return payload.Profile.toCore(), nil
}

// Search is not part of the UniqueBots API.
func (c *Client) Search(ctx context.Context, req core.SearchRequest) (*core.Search, error) {
	return nil, core.NewError(core.ErrNotSupported, "uniquebots does not expose a search endpoint")
}

// Widget is not part of the UniqueBots API.
func (c *Client) Widget(botID int64, req core.WidgetRequest) (*assets.Widget, error) {
	return nil, core.NewError(core.ErrNotSupported, "uniquebots does not render widgets")
}
