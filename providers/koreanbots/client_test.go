package koreanbots

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/botlists/botlists/core"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (r roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return r(req)
}

func testClient(t *testing.T, rt roundTrip) *Client {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(
		WithToken("token"),
		WithSession(&http.Client{Transport: rt}),
		WithLogger(log),
	)
}

func envelopeBody(data any) io.ReadCloser {
	raw, _ := json.Marshal(data)
	buf, _ := json.Marshal(envelope{Code: 200, Version: 2, Data: raw})
	return io.NopCloser(bytes.NewReader(buf))
}

func TestBot(t *testing.T) {
	web := "https://example.com"
	discord := "xyz789"
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/bots/387548561816027138" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return &http.Response{StatusCode: 200, Body: envelopeBody(map[string]any{
			"id":       "387548561816027138",
			"name":     "고양이",
			"tag":      "5457",
			"avatar":   "a1b2c3",
			"lib":      "discord.js",
			"prefix":   "!",
			"votes":    1024,
			"servers":  2200,
			"intro":    "고양이 봇",
			"category": []string{"유틸리티"},
			"flags":    5,
			"status":   "online",
			"state":    "ok",
			"owners":   []any{map[string]any{"id": "285185716240252929", "username": "owner", "tag": "0001"}, "399722783708709842"},
			"web":      web,
			"discord":  discord,
			"bg":       "https://koreanbots.dev/assets/bg.png",
		}), Header: http.Header{}}, nil
	})

	bot, err := testClient(t, transport).Bot(context.Background(), 387548561816027138)
	if err != nil {
		t.Fatalf("Bot: %v", err)
	}
	if bot.Provider != "koreanbots" || bot.Name != "고양이" || bot.Servers != 2200 {
		t.Fatalf("unexpected bot %+v", bot)
	}
	if !bot.Flags.Official() || !bot.Flags.Verified() {
		t.Fatalf("flags 5 should decode official+verified, got %v", bot.Flags)
	}
	if bot.Support == nil || *bot.Support != "https://discord.gg/xyz789" {
		t.Fatalf("support code should become an invite URL, got %v", bot.Support)
	}
	if len(bot.Owners) != 2 {
		t.Fatalf("expected expanded object plus bare ID owner, got %+v", bot.Owners)
	}
	if bot.Owners[0].Name != "owner" || bot.Owners[1].ID != "399722783708709842" {
		t.Fatalf("unexpected owners %+v", bot.Owners)
	}
	if bot.Background == nil {
		t.Fatalf("background image missing")
	}
}

func TestStatsUnchangedCountIsSuccess(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/bots/1/stats" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.Path)
		}
		body := `{"code":400,"message":"서버 수가 같습니다.","version":2}`
		return &http.Response{StatusCode: 400, Body: io.NopCloser(bytes.NewBufferString(body)), Header: http.Header{}}, nil
	})

	stats, err := testClient(t, transport).Stats(context.Background(), 1, core.StatsRequest{GuildCount: 2000})
	if err != nil {
		t.Fatalf("unchanged count must not be an error: %v", err)
	}
	if !stats.Unchanged {
		t.Fatalf("expected Unchanged, got %+v", stats)
	}
	if stats.Servers == nil || *stats.Servers != 2000 {
		t.Fatalf("servers should echo the request, got %+v", stats)
	}
}

func TestStatsOtherErrorsPropagate(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 401, Body: io.NopCloser(bytes.NewBufferString(`{"message":"bad token"}`)), Header: http.Header{}}, nil
	})

	_, err := testClient(t, transport).Stats(context.Background(), 1, core.StatsRequest{GuildCount: 10})
	if !core.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVote(t *testing.T) {
	last := time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC).UnixMilli()
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/bots/1/vote" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.URL.Query().Get("userID") != "42" {
			t.Fatalf("userID query missing: %s", req.URL.RawQuery)
		}
		return &http.Response{StatusCode: 200, Body: envelopeBody(map[string]any{
			"voted":    true,
			"lastVote": last,
		}), Header: http.Header{}}, nil
	})

	vote, err := testClient(t, transport).Vote(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if !vote.Voted {
		t.Fatalf("expected voted")
	}
	if vote.LastVote == nil || !vote.LastVote.Equal(time.UnixMilli(last)) {
		t.Fatalf("lastVote must be read as milliseconds, got %v", vote.LastVote)
	}
}

func TestVotesNotSupported(t *testing.T) {
	c := New(WithToken("token"))
	_, err := c.Votes(context.Background(), 1)
	if !core.IsNotSupported(err) {
		t.Fatalf("expected not supported, got %v", err)
	}
}

func TestUserWithBotExpansion(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/users/42" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return &http.Response{StatusCode: 200, Body: envelopeBody(map[string]any{
			"id":       "42",
			"username": "dev",
			"tag":      "0001",
			"flags":    1,
			"bots":     []any{map[string]any{"id": "1", "name": "bot one"}, "2"},
		}), Header: http.Header{}}, nil
	})

	user, err := testClient(t, transport).User(context.Background(), 42)
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if !user.Flags.Staff() {
		t.Fatalf("flags 1 should decode staff, got %v", user.Flags)
	}
	if len(user.Bots) != 2 || user.Bots[0].Name != "bot one" || user.Bots[1].ID != "2" {
		t.Fatalf("unexpected bots %+v", user.Bots)
	}
}

func TestSearch(t *testing.T) {
	results, _ := json.Marshal([]map[string]any{{"id": "1", "name": "music bot"}})
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/search/bots" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("query") != "music" || q.Get("page") != "2" {
			t.Fatalf("unexpected query %s", req.URL.RawQuery)
		}
		return &http.Response{StatusCode: 200, Body: envelopeBody(map[string]any{
			"type":        "SEARCH",
			"data":        json.RawMessage(results),
			"currentPage": 2,
			"totalPage":   7,
		}), Header: http.Header{}}, nil
	})

	search, err := testClient(t, transport).Search(context.Background(), core.SearchRequest{Query: "music", Page: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if search.Current != 2 || search.Total != 7 || len(search.Results) != 1 {
		t.Fatalf("unexpected search %+v", search)
	}
}

func TestWidgetURL(t *testing.T) {
	c := New(WithToken("token"))

	w, err := c.Widget(1, core.WidgetRequest{})
	if err != nil {
		t.Fatalf("Widget: %v", err)
	}
	if w.URL() != "https://koreanbots.dev/api/widget/bots/votes/1.svg" {
		t.Fatalf("default widget should be the vote badge, got %s", w.URL())
	}

	w, err = c.Widget(1, core.WidgetRequest{Kind: core.WidgetStatus, Style: core.WidgetStyleFlat})
	if err != nil {
		t.Fatalf("Widget: %v", err)
	}
	if w.URL() != "https://koreanbots.dev/api/widget/bots/status/1.svg?style=flat" {
		t.Fatalf("unexpected widget URL %s", w.URL())
	}
}
