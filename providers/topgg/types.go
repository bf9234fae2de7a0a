package topgg

import (
	"time"

	"github.com/botlists/botlists/assets"
	"github.com/botlists/botlists/core"
)

type topggBot struct {
	ID           string   `json:"id"`
	ClientID     string   `json:"clientid"`
	Username     string   `json:"username"`
	Discrim      string   `json:"discriminator"`
	DefAvatar    string   `json:"defAvatar"`
	Avatar       *string  `json:"avatar"`
	Lib          string   `json:"lib"`
	Prefix       string   `json:"prefix"`
	ShortDesc    string   `json:"shortdesc"`
	LongDesc     string   `json:"longdesc"`
	Tags         []string `json:"tags"`
	Owners       []string `json:"owners"`
	Guilds       []string `json:"guilds"`
	Date         string   `json:"date"`
	Certified    bool     `json:"certifiedBot"`
	Vanity       *string  `json:"vanity"`
	Points       int      `json:"points"`
	MonthlyVotes *int     `json:"monthlyPoints"`
	DonateGuild  *string  `json:"donatebotguildid"`
	ShardCount   *int     `json:"shard_count"`
	ServerCount  *int     `json:"server_count"`
	Website      *string  `json:"website"`
	Support      *string  `json:"support"`
	GitHub       *string  `json:"github"`
	Invite       *string  `json:"invite"`
}

func (b topggBot) toCore() *core.Bot {
	id := b.ID
	if id == "" {
		id = b.ClientID
	}
	hash := b.DefAvatar
	if b.Avatar != nil && *b.Avatar != "" {
		hash = *b.Avatar
	}
	bot := &core.Bot{
		Provider:      "topgg",
		ID:            id,
		Name:          b.Username,
		Discriminator: b.Discrim,
		Avatar:        assets.NewAvatar(id, assets.AvatarHash(id, hash), 0),
		Votes:         b.Points,
		Prefix:        b.Prefix,
		Library:       b.Lib,
		Intro:         b.ShortDesc,
		Desc:          b.LongDesc,
		Categories:    b.Tags,
		Website:       b.Website,
		GitHub:        b.GitHub,
		Invite:        b.Invite,
		Vanity:        b.Vanity,
		DonateGuild:   b.DonateGuild,
		MonthlyVotes:  b.MonthlyVotes,
		ShardCount:    b.ShardCount,
		Verified:      &b.Certified,
	}
	if b.ServerCount != nil {
		bot.Servers = *b.ServerCount
	}
	// Support invites come back as bare codes.
	if b.Support != nil && *b.Support != "" {
		invite := "https://discord.gg/" + *b.Support
		bot.Support = &invite
	}
	for _, owner := range b.Owners {
		bot.Owners = append(bot.Owners, core.User{Provider: "topgg", ID: owner})
	}
	if b.Date != "" {
		if listed, err := time.Parse(time.RFC3339, b.Date); err == nil {
			bot.ListedAt = &listed
		}
	}
	return bot
}

type topggStats struct {
	ServerCount *int  `json:"server_count"`
	Shards      []int `json:"shards"`
	ShardCount  *int  `json:"shard_count"`
}

func (s topggStats) toCore() *core.Stats {
	return &core.Stats{
		Provider:   "topgg",
		Servers:    s.ServerCount,
		Shards:     s.Shards,
		ShardCount: s.ShardCount,
	}
}

type topggVote struct {
	Voted int `json:"voted"`
}

type topggVotedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u topggVotedUser) toCore() core.VotedUser {
	return core.VotedUser{
		Provider: "topgg",
		ID:       u.ID,
		Name:     u.Username,
		Avatar:   assets.NewAvatar(u.ID, assets.AvatarHash(u.ID, u.Avatar), 0),
	}
}

type topggUser struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Discrim   string  `json:"discriminator"`
	DefAvatar string  `json:"defAvatar"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio"`
	Banner    *string `json:"banner"`
	Color     *string `json:"color"`
	Admin     bool    `json:"admin"`
	WebMod    bool    `json:"webMod"`
	Mod       bool    `json:"mod"`
	Certified bool    `json:"certifiedDev"`
	Supporter bool    `json:"supporter"`
	Social    struct {
		YouTube   *string `json:"youtube"`
		Reddit    *string `json:"reddit"`
		Twitter   *string `json:"twitter"`
		Instagram *string `json:"instagram"`
		GitHub    *string `json:"github"`
	} `json:"social"`
}

func (u topggUser) toCore() *core.User {
	hash := u.DefAvatar
	if u.Avatar != nil && *u.Avatar != "" {
		hash = *u.Avatar
	}
	return &core.User{
		Provider:      "topgg",
		ID:            u.ID,
		Name:          u.Username,
		Discriminator: u.Discrim,
		Avatar:        assets.NewAvatar(u.ID, assets.AvatarHash(u.ID, hash), 0),
		Bio:           u.Bio,
		Banner:        u.Banner,
		Color:         u.Color,
		GitHub:        u.Social.GitHub,
		YouTube:       u.Social.YouTube,
		Reddit:        u.Social.Reddit,
		Twitter:       u.Social.Twitter,
		Instagram:     u.Social.Instagram,
		Staff:         u.Admin,
		WebMod:        u.WebMod,
		Mod:           u.Mod,
		Certified:     u.Certified,
		Supporter:     u.Supporter,
		Admin:         u.Admin,
	}
}

type topggSearch struct {
	Results []topggBot `json:"results"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
}

func (s topggSearch) toCore() *core.Search {
	search := &core.Search{
		Provider: "topgg",
		Limit:    s.Limit,
		Offset:   s.Offset,
		Total:    s.Total,
	}
	for _, bot := range s.Results {
		search.Results = append(search.Results, *bot.toCore())
	}
	if s.Limit > 0 {
		search.Current = s.Offset/s.Limit + 1
	}
	return search
}
