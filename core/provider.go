package core

import (
	"context"
	"time"

	"github.com/botlists/botlists/assets"
)

// Provider is the interface implemented by every listing-service backend
// client. Each method issues one request against the service and converts the
// decoded payload into the normalized models above.
type Provider interface {
	Name() string
	Capabilities() Capabilities

	Bot(ctx context.Context, botID int64) (*Bot, error)
	Stats(ctx context.Context, botID int64, req StatsRequest) (*Stats, error)
	Vote(ctx context.Context, botID, userID int64) (*Vote, error)
	Votes(ctx context.Context, botID int64) ([]VotedUser, error)
	User(ctx context.Context, userID int64) (*User, error)
	Search(ctx context.Context, req SearchRequest) (*Search, error)
	Widget(botID int64, req WidgetRequest) (*assets.Widget, error)

	Close() error
}

// Capabilities describes the operations a listing service supports and the
// service's guidance for automated stat publishing.
type Capabilities struct {
	Provider string

	Votes   bool
	Users   bool
	Search  bool
	Widgets bool
	Shards  bool

	// MinStatsInterval is the shortest interval the service allows between
	// automated guild-count publishes.
	MinStatsInterval time.Duration
}

// StatsRequest carries a guild count publish. Shard metadata is optional and
// only honored by services that track shards.
type StatsRequest struct {
	GuildCount int
	ShardID    *int
	ShardCount *int
}

// SearchRequest selects one page of the service's bot directory. An empty
// Query lists the directory in ranking order.
type SearchRequest struct {
	Query string
	Page  int
}

// WidgetKind selects which badge a service renders.
type WidgetKind string

const (
	WidgetVotes   WidgetKind = "votes"
	WidgetServers WidgetKind = "servers"
	WidgetStatus  WidgetKind = "status"
)

// WidgetStyle selects a badge style for services that offer more than one.
type WidgetStyle string

const (
	WidgetStyleClassic WidgetStyle = "classic"
	WidgetStyleFlat    WidgetStyle = "flat"
)

// WidgetRequest describes an image badge. Building the widget never touches
// the network; the image is fetched only when the asset is read or saved.
type WidgetRequest struct {
	Kind  WidgetKind
	Style WidgetStyle
}
