package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestAvatarURL(t *testing.T) {
	avatar := NewAvatar("285185716240252929", "a1b2c3", 0)
	if got := avatar.URL(); got != "https://cdn.discordapp.com/avatars/285185716240252929/a1b2c3.png" {
		t.Fatalf("unexpected URL %s", got)
	}

	sized := NewAvatar("285185716240252929", "a1b2c3", 512)
	if got := sized.URL(); got != "https://cdn.discordapp.com/avatars/285185716240252929/a1b2c3.png?size=512" {
		t.Fatalf("unexpected sized URL %s", got)
	}

	webp, err := avatar.URLFormat("webp")
	if err != nil {
		t.Fatalf("URLFormat: %v", err)
	}
	if webp != "https://cdn.discordapp.com/avatars/285185716240252929/a1b2c3.webp" {
		t.Fatalf("unexpected webp URL %s", webp)
	}

	if _, err := avatar.URLFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("gif should be unsupported, got %v", err)
	}
}

func TestAvatarHash(t *testing.T) {
	cases := map[string]string{
		"a1b2c3": "a1b2c3",
		"https://cdn.discordapp.com/avatars/42/a1b2c3.png":          "a1b2c3",
		"https://cdn.discordapp.com/avatars/42/a1b2c3.webp?size=64": "a1b2c3",
	}
	for raw, want := range cases {
		if got := AvatarHash("42", raw); got != want {
			t.Fatalf("AvatarHash(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestImageFromURL(t *testing.T) {
	image, err := NewImage("https://koreanbots.dev/assets/bg.png?v=3")
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if got := image.URL(); got != "https://koreanbots.dev/assets/bg.png?v=3" {
		t.Fatalf("unexpected URL %s", got)
	}
}

func TestReadAndSave(t *testing.T) {
	payload := []byte("<svg/>")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/widget/1.svg" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	defer server.Close()

	widget := NewWidget(server.URL, "/widget/1", nil, "svg")
	data, err := widget.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("unexpected body %q", data)
	}

	name := filepath.Join(t.TempDir(), "widget.svg")
	n, err := widget.Save(context.Background(), name)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("Save wrote %d bytes, want %d", n, len(payload))
	}
	saved, err := os.ReadFile(name)
	if err != nil || string(saved) != string(payload) {
		t.Fatalf("saved file mismatch: %q %v", saved, err)
	}

	missing := NewWidget(server.URL, "/widget/2", nil, "svg")
	if _, err := missing.Read(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
