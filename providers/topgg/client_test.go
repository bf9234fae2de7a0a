package topgg

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

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

func jsonBody(v any) io.ReadCloser {
	buf, _ := json.Marshal(v)
	return io.NopCloser(bytes.NewReader(buf))
}

func TestBot(t *testing.T) {
	avatar := "a_c1b2"
	invite := "https://discord.com/oauth2/authorize?client_id=1"
	support := "abc123"
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/bots/716710753815986203" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.Header.Get("Authorization") != "token" {
			t.Fatalf("token must travel raw in Authorization")
		}
		return &http.Response{StatusCode: 200, Body: jsonBody(topggBot{
			ID:        "716710753815986203",
			Username:  "Kira",
			Discrim:   "9107",
			Avatar:    &avatar,
			Lib:       "discord.py",
			Prefix:    "k!",
			ShortDesc: "helper bot",
			Tags:      []string{"moderation", "fun"},
			Owners:    []string{"285185716240252929"},
			Date:      "2020-06-01T12:00:00Z",
			Points:    512,
			Invite:    &invite,
			Support:   &support,
		}), Header: http.Header{}}, nil
	})

	bot, err := testClient(t, transport).Bot(context.Background(), 716710753815986203)
	if err != nil {
		t.Fatalf("Bot: %v", err)
	}
	if bot.Provider != "topgg" || bot.Name != "Kira" || bot.Votes != 512 {
		t.Fatalf("unexpected bot %+v", bot)
	}
	if bot.Support == nil || *bot.Support != "https://discord.gg/abc123" {
		t.Fatalf("support code should become an invite URL, got %v", bot.Support)
	}
	if len(bot.Owners) != 1 || bot.Owners[0].ID != "285185716240252929" {
		t.Fatalf("unexpected owners %+v", bot.Owners)
	}
	if bot.ListedAt == nil || bot.ListedAt.Year() != 2020 {
		t.Fatalf("listed date not parsed: %v", bot.ListedAt)
	}
	if bot.Avatar == nil || bot.Avatar.URL() == "" {
		t.Fatalf("avatar asset missing")
	}
}

func TestStats(t *testing.T) {
	shardID, shardCount := 2, 8
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/bots/1/stats" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["server_count"] != float64(300) {
			t.Fatalf("server_count missing: %v", body)
		}
		if body["shard_id"] != float64(2) || body["shard_count"] != float64(8) {
			t.Fatalf("shard fields missing: %v", body)
		}
		return &http.Response{StatusCode: 200, Body: jsonBody(map[string]any{}), Header: http.Header{}}, nil
	})

	stats, err := testClient(t, transport).Stats(context.Background(), 1, core.StatsRequest{
		GuildCount: 300,
		ShardID:    &shardID,
		ShardCount: &shardCount,
	})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Servers == nil || *stats.Servers != 300 {
		t.Fatalf("servers should echo the request, got %+v", stats)
	}
	if stats.ShardCount == nil || *stats.ShardCount != 8 {
		t.Fatalf("shard count should echo the request, got %+v", stats)
	}
}

func TestVote(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/bots/1/check" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.URL.Query().Get("userId") != "285185716240252929" {
			t.Fatalf("userId query missing: %s", req.URL.RawQuery)
		}
		return &http.Response{StatusCode: 200, Body: jsonBody(topggVote{Voted: 1}), Header: http.Header{}}, nil
	})

	vote, err := testClient(t, transport).Vote(context.Background(), 1, 285185716240252929)
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if !vote.Voted {
		t.Fatalf("voted=1 should map to true")
	}
}

func TestVotes(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/bots/1/votes" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return &http.Response{StatusCode: 200, Body: jsonBody([]topggVotedUser{
			{ID: "10", Username: "alpha", Avatar: "h1"},
			{ID: "11", Username: "beta", Avatar: "h2"},
		}), Header: http.Header{}}, nil
	})

	voters, err := testClient(t, transport).Votes(context.Background(), 1)
	if err != nil {
		t.Fatalf("Votes: %v", err)
	}
	if len(voters) != 2 || voters[0].Name != "alpha" || voters[1].ID != "11" {
		t.Fatalf("unexpected voters %+v", voters)
	}
}

func TestSearchPaging(t *testing.T) {
	transport := roundTrip(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("limit") != "10" || q.Get("offset") != "20" || q.Get("search") != "music" {
			t.Fatalf("unexpected query %s", req.URL.RawQuery)
		}
		return &http.Response{StatusCode: 200, Body: jsonBody(topggSearch{
			Results: []topggBot{{ID: "1", Username: "one"}},
			Limit:   10,
			Offset:  20,
			Total:   45,
		}), Header: http.Header{}}, nil
	})

	search, err := testClient(t, transport).Search(context.Background(), core.SearchRequest{Query: "music", Page: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if search.Current != 3 || search.Total != 45 || len(search.Results) != 1 {
		t.Fatalf("unexpected search %+v", search)
	}
}

func TestWidgetURLs(t *testing.T) {
	c := New(WithToken("token"))
	w, err := c.Widget(1, core.WidgetRequest{Kind: core.WidgetVotes})
	if err != nil {
		t.Fatalf("Widget: %v", err)
	}
	if w.URL() != "https://top.gg/api/widget/upvotes/1.svg" {
		t.Fatalf("unexpected widget URL %s", w.URL())
	}

	if _, err := c.Widget(1, core.WidgetRequest{Kind: core.WidgetKind("banner")}); err == nil {
		t.Fatalf("unknown widget kind should fail")
	}
}
