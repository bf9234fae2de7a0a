// Package botlists is a unified client for the Discord bot-listing services
// koreanbots, top.gg and UniqueBots. One Client fans each operation out to
// whichever backends a token was supplied for and merges the per-service
// results into one composite response.
package botlists

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/botlists/botlists/assets"
	"github.com/botlists/botlists/core"
	"github.com/botlists/botlists/providers/koreanbots"
	"github.com/botlists/botlists/providers/topgg"
	"github.com/botlists/botlists/providers/uniquebots"
)

// Client is the aggregating façade over the configured listing backends.
// Presence of a token is the sole switch that activates a backend; websites
// without one are silently skipped by every operation.
type Client struct {
	providers map[Website]core.Provider
	logger    logrus.FieldLogger
}

// New creates a Client with backends for each supplied token.
func New(opts ...ClientOption) *Client {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		providers: map[Website]core.Provider{},
		logger:    o.logger,
	}
	if o.koreanbotsToken != "" {
		c.providers[KoreanBots] = koreanbots.New(
			koreanbots.WithToken(o.koreanbotsToken),
			koreanbots.WithSession(o.session),
			koreanbots.WithRefreshPeriod(o.refreshPeriod),
			koreanbots.WithLogger(o.logger),
		)
	}
	if o.topggToken != "" {
		c.providers[TopGG] = topgg.New(
			topgg.WithToken(o.topggToken),
			topgg.WithSession(o.session),
			topgg.WithRefreshPeriod(o.refreshPeriod),
			topgg.WithLogger(o.logger),
		)
	}
	if o.uniquebotsToken != "" {
		c.providers[UniqueBots] = uniquebots.New(
			uniquebots.WithToken(o.uniquebotsToken),
			uniquebots.WithSession(o.session),
			uniquebots.WithRefreshPeriod(o.refreshPeriod),
			uniquebots.WithLogger(o.logger),
		)
	}
	for site, provider := range o.providers {
		c.providers[site] = provider
	}
	return c
}

// Websites returns the configured website tags in fan-out order.
func (c *Client) Websites() []Website {
	var out []Website
	for _, site := range websiteOrder {
		if _, ok := c.providers[site]; ok {
			out = append(out, site)
		}
	}
	return out
}

// Has reports whether a website is configured.
func (c *Client) Has(site Website) bool {
	_, ok := c.providers[site]
	return ok
}

// Close releases every backend's session.
func (c *Client) Close() error {
	var first error
	for _, provider := range c.providers {
		if err := provider.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// selected yields the configured providers matching the caller's subset, in
// deterministic fan-out order. An empty subset means every configured
// website.
func (c *Client) selected(sites []Website) []core.Provider {
	wanted := func(Website) bool { return true }
	if len(sites) > 0 {
		subset := map[Website]bool{}
		for _, site := range sites {
			subset[site] = true
		}
		wanted = func(site Website) bool { return subset[site] }
	}
	var out []core.Provider
	for _, site := range websiteOrder {
		provider, ok := c.providers[site]
		if ok && wanted(site) {
			out = append(out, provider)
		}
	}
	return out
}

// Bot looks a bot up on the selected websites (default: all configured).
// The first backend failure aborts the fan-out and propagates.
func (c *Client) Bot(ctx context.Context, botID int64, sites ...Website) (*BotResult, error) {
	result := &BotResult{}
	for _, provider := range c.selected(sites) {
		bot, err := provider.Bot(ctx, botID)
		if err != nil {
			return nil, &ProviderError{Website: Website(provider.Name()), Op: "Bot", Err: err}
		}
		switch Website(provider.Name()) {
		case KoreanBots:
			result.KoreanBots = bot
		case TopGG:
			result.TopGG = bot
		case UniqueBots:
			result.UniqueBots = bot
		}
	}
	return result, nil
}

// Stats publishes a guild count to the selected websites.
func (c *Client) Stats(ctx context.Context, botID int64, req core.StatsRequest, sites ...Website) (*StatsResult, error) {
	result := &StatsResult{}
	for _, provider := range c.selected(sites) {
		stats, err := provider.Stats(ctx, botID, req)
		if err != nil {
			return nil, &ProviderError{Website: Website(provider.Name()), Op: "Stats", Err: err}
		}
		switch Website(provider.Name()) {
		case KoreanBots:
			result.KoreanBots = stats
		case TopGG:
			result.TopGG = stats
		case UniqueBots:
			result.UniqueBots = stats
		}
	}
	return result, nil
}

// Vote checks whether a user voted for the bot on the selected websites.
func (c *Client) Vote(ctx context.Context, botID, userID int64, sites ...Website) (*VoteResult, error) {
	result := &VoteResult{}
	for _, provider := range c.selected(sites) {
		vote, err := provider.Vote(ctx, botID, userID)
		if err != nil {
			return nil, &ProviderError{Website: Website(provider.Name()), Op: "Vote", Err: err}
		}
		switch Website(provider.Name()) {
		case KoreanBots:
			result.KoreanBots = vote
		case TopGG:
			result.TopGG = vote
		case UniqueBots:
			result.UniqueBots = vote
		}
	}
	return result, nil
}

// Votes lists the bot's voters on the selected websites. Websites without a
// voter-list endpoint are skipped, leaving their slot absent.
func (c *Client) Votes(ctx context.Context, botID int64, sites ...Website) (*VotesResult, error) {
	result := &VotesResult{}
	for _, provider := range c.selected(sites) {
		if !provider.Capabilities().Votes {
			continue
		}
		voters, err := provider.Votes(ctx, botID)
		if err != nil {
			return nil, &ProviderError{Website: Website(provider.Name()), Op: "Votes", Err: err}
		}
		switch Website(provider.Name()) {
		case TopGG:
			result.TopGG = voters
		case UniqueBots:
			result.UniqueBots = voters
		}
	}
	return result, nil
}

// Users looks a user profile up on the selected websites.
func (c *Client) Users(ctx context.Context, userID int64, sites ...Website) (*UserResult, error) {
	result := &UserResult{}
	for _, provider := range c.selected(sites) {
		if !provider.Capabilities().Users {
			continue
		}
		user, err := provider.User(ctx, userID)
		if err != nil {
			return nil, &ProviderError{Website: Website(provider.Name()), Op: "Users", Err: err}
		}
		switch Website(provider.Name()) {
		case KoreanBots:
			result.KoreanBots = user
		case TopGG:
			result.TopGG = user
		case UniqueBots:
			result.UniqueBots = user
		}
	}
	return result, nil
}

// Search queries the bot directories of the selected websites. Websites
// without a search endpoint are skipped, leaving their slot absent.
func (c *Client) Search(ctx context.Context, req core.SearchRequest, sites ...Website) (*SearchResult, error) {
	result := &SearchResult{}
	for _, provider := range c.selected(sites) {
		if !provider.Capabilities().Search {
			continue
		}
		search, err := provider.Search(ctx, req)
		if err != nil {
			return nil, &ProviderError{Website: Website(provider.Name()), Op: "Search", Err: err}
		}
		switch Website(provider.Name()) {
		case KoreanBots:
			result.KoreanBots = search
		case TopGG:
			result.TopGG = search
		}
	}
	return result, nil
}

// Widget builds a badge asset for one website. Building never touches the
// network; the badge image is fetched when the asset is read or saved.
func (c *Client) Widget(site Website, botID int64, req core.WidgetRequest) (*assets.Widget, error) {
	provider, ok := c.providers[site]
	if !ok {
		for _, known := range websiteOrder {
			if site == known {
				return nil, ErrNotConfigured
			}
		}
		return nil, ErrUnknownWebsite
	}
	return provider.Widget(botID, req)
}

// minStatsInterval is the strictest autopost floor among configured
// backends, and the website that mandates it.
func (c *Client) minStatsInterval() (time.Duration, Website) {
	var floor time.Duration
	var strictest Website
	for _, site := range websiteOrder {
		provider, ok := c.providers[site]
		if !ok {
			continue
		}
		if d := provider.Capabilities().MinStatsInterval; d > floor {
			floor = d
			strictest = site
		}
	}
	return floor, strictest
}
