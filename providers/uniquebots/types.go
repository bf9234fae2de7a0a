package uniquebots

import (
	"github.com/botlists/botlists/assets"
	"github.com/botlists/botlists/core"
)

type ubLibrary struct {
	Name string `json:"name"`
}

type ubCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ubOwner struct {
	ID string `json:"id"`
}

type ubBot struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	AvatarURL       string       `json:"avatarURL"`
	Trusted         bool         `json:"trusted"`
	DiscordVerified bool         `json:"discordVerified"`
	Guilds          int          `json:"guilds"`
	Status          string       `json:"status"`
	Brief           string       `json:"brief"`
	Description     string       `json:"description"`
	Invite          *string      `json:"invite"`
	Website         *string      `json:"website"`
	Support         *string      `json:"support"`
	Git             *string      `json:"git"`
	Prefix          string       `json:"prefix"`
	Library         *ubLibrary   `json:"library"`
	Categories      []ubCategory `json:"categories"`
	Slug            *string      `json:"slug"`
	Premium         *bool        `json:"premium"`
	Owners          []ubOwner    `json:"owner"`
}

func (b ubBot) toCore() *core.Bot {
	bot := &core.Bot{
		Provider:      "uniquebots",
		ID:            b.ID,
		Name:          b.Name,
		Avatar:        assets.NewAvatar(b.ID, assets.AvatarHash(b.ID, b.AvatarURL), 0),
		Servers:       b.Guilds,
		Prefix:        b.Prefix,
		Intro:         b.Brief,
		Desc:          b.Description,
		Status:        core.BotStatus(b.Status),
		Website:       b.Website,
		GitHub:        b.Git,
		Invite:        b.Invite,
		Support:       b.Support,
		Slug:          b.Slug,
		Premium:       b.Premium,
		Trusted:       &b.Trusted,
		Verified:      &b.DiscordVerified,
	}
	if b.Library != nil {
		bot.Library = b.Library.Name
	}
	for _, category := range b.Categories {
		bot.Categories = append(bot.Categories, category.Name)
	}
	for _, owner := range b.Owners {
		bot.Owners = append(bot.Owners, core.User{Provider: "uniquebots", ID: owner.ID})
	}
	return bot
}

type ubStats struct {
	Guilds int `json:"guilds"`
}

type ubVote struct {
	HeartClicked bool `json:"heartClicked"`
}

type ubHeart struct {
	From ubProfile `json:"from"`
}

type ubProfile struct {
	ID          string  `json:"id"`
	Tag         string  `json:"tag"`
	AvatarURL   string  `json:"avatarURL"`
	Admin       bool    `json:"admin"`
	Description *string `json:"description"`
	Bots        []ubBot `json:"bots"`
}

func (p ubProfile) toCore() *core.User {
	user := &core.User{
		Provider: "uniquebots",
		ID:       p.ID,
		Name:     p.Tag,
		Avatar:   assets.NewAvatar(p.ID, assets.AvatarHash(p.ID, p.AvatarURL), 0),
		Bio:      p.Description,
		Admin:    p.Admin,
		Staff:    p.Admin,
	}
	for _, bot := range p.Bots {
		user.Bots = append(user.Bots, *bot.toCore())
	}
	return user
}

func (p ubProfile) toVotedUser() core.VotedUser {
	return core.VotedUser{
		Provider: "uniquebots",
		ID:       p.ID,
		Name:     p.Tag,
		Avatar:   assets.NewAvatar(p.ID, assets.AvatarHash(p.ID, p.AvatarURL), 0),
	}
}
