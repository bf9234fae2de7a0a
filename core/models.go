package core

import (
	"time"

	"github.com/botlists/botlists/assets"
)

// BotStatus is the Discord presence reported for a listed bot.
type BotStatus string

const (
	StatusOnline    BotStatus = "online"
	StatusIdle      BotStatus = "idle"
	StatusDND       BotStatus = "dnd"
	StatusStreaming BotStatus = "streaming"
	StatusOffline   BotStatus = "offline"
)

// BotState is the listing state a service assigns to a bot entry.
type BotState string

const (
	StateOK       BotState = "ok"
	StateReported BotState = "reported"
	StateBlocked  BotState = "blocked"
	StatePrivate  BotState = "private"
	StateArchived BotState = "archived"
)

// Bot is the normalized bot entry returned by a listing service. Identity,
// display and popularity fields are always populated; everything a service
// may omit is a pointer left nil when absent.
type Bot struct {
	Provider      string
	ID            string
	Name          string
	Discriminator string
	Avatar        *assets.Avatar

	Votes   int
	Servers int

	Prefix  string
	Library string
	Intro   string
	Desc    string

	Categories []string
	Owners     []User
	Flags      BotFlags
	Status     BotStatus
	State      BotState

	Website      *string
	GitHub       *string
	Invite       *string
	Support      *string
	Vanity       *string
	Slug         *string
	DonateGuild  *string
	MonthlyVotes *int
	ShardCount   *int
	Trusted      *bool
	Verified     *bool
	Premium      *bool
	ListedAt     *time.Time

	Background *assets.Image
	Banner     *assets.Image
}

// Stats is the acknowledgement for a published guild count.
type Stats struct {
	Provider   string
	Servers    *int
	Shards     []int
	ShardCount *int
	Message    string

	// Unchanged marks the koreanbots "count identical, nothing updated"
	// response which the service reports as a 400.
	Unchanged bool
}

// Vote reports whether a user has voted (or hearted) a bot.
type Vote struct {
	Provider string
	Voted    bool
	LastVote *time.Time
}

// VotedUser is one entry of a bot's voter list.
type VotedUser struct {
	Provider string
	ID       string
	Name     string
	Avatar   *assets.Avatar
}

// User is the normalized profile of a listed user, including owned bots.
// Bot expansion is depth-limited: bots owned by this user do not expand
// their owners' bots in turn.
type User struct {
	Provider      string
	ID            string
	Name          string
	Discriminator string
	Avatar        *assets.Avatar
	Flags         UserFlags
	Bots          []Bot

	Bio    *string
	Banner *string
	Color  *string
	GitHub *string

	YouTube   *string
	Reddit    *string
	Twitter   *string
	Instagram *string

	Staff     bool
	WebMod    bool
	Mod       bool
	Certified bool
	Supporter bool
	Admin     bool
}

// Search is one page of bot list or search results.
type Search struct {
	Provider string
	Results  []Bot
	Current  int
	Total    int
	Limit    int
	Offset   int
}
