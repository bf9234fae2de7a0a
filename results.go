package botlists

import "github.com/botlists/botlists/core"

// BotResult holds one bot lookup per configured website. A nil slot means
// that website was unconfigured, unselected or does not support the
// operation, never a swallowed failure.
type BotResult struct {
	KoreanBots *core.Bot
	TopGG      *core.Bot
	UniqueBots *core.Bot
}

// StatsResult holds one publish acknowledgement per configured website.
type StatsResult struct {
	KoreanBots *core.Stats
	TopGG      *core.Stats
	UniqueBots *core.Stats
}

// VoteResult holds one vote check per configured website.
type VoteResult struct {
	KoreanBots *core.Vote
	TopGG      *core.Vote
	UniqueBots *core.Vote
}

// VotesResult holds the voter lists of the websites that expose one.
// koreanbots has no voter-list endpoint, so it has no slot here.
type VotesResult struct {
	TopGG      []core.VotedUser
	UniqueBots []core.VotedUser
}

// UserResult holds one profile lookup per configured website.
type UserResult struct {
	KoreanBots *core.User
	TopGG      *core.User
	UniqueBots *core.User
}

// SearchResult holds one directory page per website that exposes search.
// UniqueBots has no search endpoint, so it has no slot here.
type SearchResult struct {
	KoreanBots *core.Search
	TopGG      *core.Search
}
