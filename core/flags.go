package core

// BotFlag is a single koreanbots bot capability bit.
type BotFlag uint

const (
	BotFlagOfficial        BotFlag = 1 << 0
	BotFlagVerified        BotFlag = 1 << 2
	BotFlagPartner         BotFlag = 1 << 3
	BotFlagDiscordVerified BotFlag = 1 << 4
	BotFlagPremium         BotFlag = 1 << 5
	BotFlagHackathonWinner BotFlag = 1 << 6
)

var botFlagNames = map[BotFlag]string{
	BotFlagOfficial:        "official",
	BotFlagVerified:        "verification_bot",
	BotFlagPartner:         "partner",
	BotFlagDiscordVerified: "discord_verification_bot",
	BotFlagPremium:         "premium",
	BotFlagHackathonWinner: "first_hackathon_won",
}

func (f BotFlag) String() string { return botFlagNames[f] }

// BotFlags is the raw flag bitmask attached to a listed bot. Membership is
// answered with direct bit tests against the stored integer.
type BotFlags uint

func (f BotFlags) Has(flag BotFlag) bool { return uint(f)&uint(flag) != 0 }
func (f BotFlags) Empty() bool           { return f == 0 }

func (f BotFlags) Official() bool        { return f.Has(BotFlagOfficial) }
func (f BotFlags) Verified() bool        { return f.Has(BotFlagVerified) }
func (f BotFlags) Partner() bool         { return f.Has(BotFlagPartner) }
func (f BotFlags) DiscordVerified() bool { return f.Has(BotFlagDiscordVerified) }
func (f BotFlags) Premium() bool         { return f.Has(BotFlagPremium) }
func (f BotFlags) HackathonWinner() bool { return f.Has(BotFlagHackathonWinner) }

// All returns the named flags present in the mask.
func (f BotFlags) All() []BotFlag {
	var out []BotFlag
	for flag := BotFlagOfficial; flag <= BotFlagHackathonWinner; flag <<= 1 {
		if _, ok := botFlagNames[flag]; ok && f.Has(flag) {
			out = append(out, flag)
		}
	}
	return out
}

// UserFlag is a single koreanbots user capability bit.
type UserFlag uint

const (
	UserFlagStaff       UserFlag = 1 << 0
	UserFlagBugHunter   UserFlag = 1 << 1
	UserFlagBotReviewer UserFlag = 1 << 2
	UserFlagPremium     UserFlag = 1 << 3
)

var userFlagNames = map[UserFlag]string{
	UserFlagStaff:       "staff",
	UserFlagBugHunter:   "bug_hunter",
	UserFlagBotReviewer: "bot_reviewer",
	UserFlagPremium:     "premium",
}

func (f UserFlag) String() string { return userFlagNames[f] }

// UserFlags is the raw flag bitmask attached to a listed user.
type UserFlags uint

func (f UserFlags) Has(flag UserFlag) bool { return uint(f)&uint(flag) != 0 }
func (f UserFlags) Empty() bool            { return f == 0 }

func (f UserFlags) Staff() bool       { return f.Has(UserFlagStaff) }
func (f UserFlags) BugHunter() bool   { return f.Has(UserFlagBugHunter) }
func (f UserFlags) BotReviewer() bool { return f.Has(UserFlagBotReviewer) }
func (f UserFlags) Premium() bool     { return f.Has(UserFlagPremium) }

// All returns the named flags present in the mask.
func (f UserFlags) All() []UserFlag {
	var out []UserFlag
	for flag := UserFlagStaff; flag <= UserFlagPremium; flag <<= 1 {
		if f.Has(flag) {
			out = append(out, flag)
		}
	}
	return out
}
