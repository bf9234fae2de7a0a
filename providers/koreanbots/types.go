package koreanbots

import (
	"encoding/json"
	"time"

	"github.com/botlists/botlists/assets"
	"github.com/botlists/botlists/core"
)

// envelope is the {code, data, message, version} wrapper koreanbots puts
// around every v2 payload.
type envelope struct {
	Code    int             `json:"code"`
	Version int             `json:"version"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type kbBot struct {
	ID       string  `json:"id"`
	Tag      string  `json:"tag"`
	Avatar   string  `json:"avatar"`
	Name     string  `json:"name"`
	Flags    uint    `json:"flags"`
	Lib      string  `json:"lib"`
	Prefix   string  `json:"prefix"`
	Votes    int     `json:"votes"`
	Servers  int     `json:"servers"`
	Intro    string  `json:"intro"`
	Desc     string  `json:"desc"`
	Category []string `json:"category"`
	Status   string  `json:"status"`
	State    string  `json:"state"`
	Owners   []json.RawMessage `json:"owners"`
	Web      *string `json:"web"`
	Git      *string `json:"git"`
	URL      *string `json:"url"`
	Discord  *string `json:"discord"`
	Vanity   *string `json:"vanity"`
	BG       *string `json:"bg"`
	Banner   *string `json:"banner"`
}

func (b kbBot) toCore() *core.Bot {
	bot := &core.Bot{
		Provider:      "koreanbots",
		ID:            b.ID,
		Name:          b.Name,
		Discriminator: b.Tag,
		Avatar:        assets.NewAvatar(b.ID, b.Avatar, 0),
		Votes:         b.Votes,
		Servers:       b.Servers,
		Prefix:        b.Prefix,
		Library:       b.Lib,
		Intro:         b.Intro,
		Desc:          b.Desc,
		Categories:    b.Category,
		Flags:         core.BotFlags(b.Flags),
		Status:        core.BotStatus(b.Status),
		State:         core.BotState(b.State),
		Website:       b.Web,
		GitHub:        b.Git,
		Invite:        b.URL,
		Vanity:        b.Vanity,
	}
	// Support servers come back as bare invite codes.
	if b.Discord != nil && *b.Discord != "" {
		invite := "https://discord.gg/" + *b.Discord
		bot.Support = &invite
	}
	for _, raw := range b.Owners {
		// Owners arrive either expanded as objects or as bare ID strings.
		var owner kbUser
		if err := json.Unmarshal(raw, &owner); err == nil && owner.ID != "" {
			bot.Owners = append(bot.Owners, *owner.toCore())
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			bot.Owners = append(bot.Owners, core.User{Provider: "koreanbots", ID: id})
		}
	}
	if b.BG != nil {
		if image, err := assets.NewImage(*b.BG); err == nil {
			bot.Background = image
		}
	}
	if b.Banner != nil {
		if image, err := assets.NewImage(*b.Banner); err == nil {
			bot.Banner = image
		}
	}
	return bot
}

type kbVote struct {
	Voted    bool   `json:"voted"`
	LastVote *int64 `json:"lastVote"`
}

func (v kbVote) toCore() *core.Vote {
	vote := &core.Vote{Provider: "koreanbots", Voted: v.Voted}
	if v.LastVote != nil && *v.LastVote > 0 {
		// lastVote is reported in milliseconds.
		last := time.UnixMilli(*v.LastVote)
		vote.LastVote = &last
	}
	return vote
}

type kbUser struct {
	ID     string            `json:"id"`
	Name   string            `json:"username"`
	Tag    string            `json:"tag"`
	GitHub *string           `json:"github"`
	Flags  uint              `json:"flags"`
	Bots   []json.RawMessage `json:"bots"`
}

func (u kbUser) toCore() *core.User {
	user := &core.User{
		Provider:      "koreanbots",
		ID:            u.ID,
		Name:          u.Name,
		Discriminator: u.Tag,
		GitHub:        u.GitHub,
		Flags:         core.UserFlags(u.Flags),
	}
	for _, raw := range u.Bots {
		// Bots arrive either expanded as objects or as bare ID strings.
		var bot kbBot
		if err := json.Unmarshal(raw, &bot); err == nil && bot.ID != "" {
			user.Bots = append(user.Bots, *bot.toCore())
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			user.Bots = append(user.Bots, core.Bot{Provider: "koreanbots", ID: id})
		}
	}
	return user
}

type kbSearch struct {
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
	CurrentPage int             `json:"currentPage"`
	TotalPage   int             `json:"totalPage"`
}

func (s kbSearch) toCore() *core.Search {
	search := &core.Search{
		Provider: "koreanbots",
		Current:  s.CurrentPage,
		Total:    s.TotalPage,
	}
	var bots []kbBot
	if err := json.Unmarshal(s.Data, &bots); err == nil {
		for _, bot := range bots {
			search.Results = append(search.Results, *bot.toCore())
		}
	}
	return search
}
