// Package assets builds CDN URLs for avatars, site images and widget badges
// and fetches their bytes on demand. It is independent of the listing-service
// transports: reads use a plain HTTP client with no retry or status mapping
// beyond asset existence.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when the CDN has no asset at the built URL.
	ErrNotFound = errors.New("asset not found")

	// ErrUnsupportedFormat is returned for a format the asset cannot render.
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// Asset is a lazily-fetched remote image. The URL is fully determined at
// construction; no network call happens until Read or Save.
type Asset struct {
	base    string
	path    string
	query   url.Values
	formats []string

	httpClient *http.Client
}

// New builds an asset from its CDN base, path (without extension), query and
// the formats the CDN can render, most preferred first.
func New(base, path string, query url.Values, formats ...string) *Asset {
	return &Asset{base: base, path: path, query: query, formats: formats}
}

// WithHTTPClient sets the client used for Read and Save.
func (a *Asset) WithHTTPClient(client *http.Client) *Asset {
	a.httpClient = client
	return a
}

// URL renders the asset link in its preferred format.
func (a *Asset) URL() string {
	u, _ := a.urlFor("")
	return u
}

// URLFormat renders the asset link in the given format.
func (a *Asset) URLFormat(format string) (string, error) {
	return a.urlFor(format)
}

func (a *Asset) urlFor(format string) (string, error) {
	if format == "" {
		if len(a.formats) == 0 {
			return "", ErrUnsupportedFormat
		}
		format = a.formats[0]
	} else if !a.supports(format) {
		return "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, format, strings.Join(a.formats, ", "))
	}
	u := a.base + a.path + "." + format
	if len(a.query) > 0 {
		u += "?" + a.query.Encode()
	}
	return u, nil
}

func (a *Asset) supports(format string) bool {
	for _, f := range a.formats {
		if f == format {
			return true
		}
	}
	return false
}

func (a *Asset) String() string { return a.URL() }

// Read fetches the asset bytes.
func (a *Asset) Read(ctx context.Context) ([]byte, error) {
	client := a.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, a.URL())
	default:
		return nil, fmt.Errorf("fetch asset %s: %s", a.URL(), resp.Status)
	}
}

// Save fetches the asset and writes it to the named file, returning the
// number of bytes written.
func (a *Asset) Save(ctx context.Context, name string) (int, error) {
	data, err := a.Read(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Avatar is a Discord user or bot avatar on the Discord CDN.
type Avatar struct {
	Asset
	UserID string
	Hash   string
}

// NewAvatar builds the CDN avatar asset for a user ID and raw avatar hash.
// A non-zero size is passed through as the CDN size query.
func NewAvatar(userID, hash string, size int) *Avatar {
	query := url.Values{}
	if size > 0 {
		query.Set("size", fmt.Sprint(size))
	}
	return &Avatar{
		Asset:  *New("https://cdn.discordapp.com", fmt.Sprintf("/avatars/%s/%s", userID, hash), query, "png", "jpg", "webp"),
		UserID: userID,
		Hash:   hash,
	}
}

// AvatarHash extracts the raw avatar hash from a value that may already be a
// full CDN URL. Plain hashes pass through unchanged.
func AvatarHash(userID, raw string) string {
	raw = strings.TrimPrefix(raw, fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/", userID))
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

// Image is an arbitrary image URL handed back by a listing service, such as
// a background or banner.
type Image struct {
	Asset
}

// NewImage parses a full image URL into an asset. The format is fixed to the
// extension the service supplied.
func NewImage(raw string) (*Image, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	path := u.Path
	format := ""
	if i := strings.LastIndex(path, "."); i >= 0 {
		format = path[i+1:]
		path = path[:i]
	}
	return &Image{Asset: *New(u.Scheme+"://"+u.Host, path, u.Query(), format)}, nil
}

// Widget is a server-rendered badge image for a listed bot.
type Widget struct {
	Asset
}

// NewWidget builds a widget badge from a service base URL, path and query.
func NewWidget(base, path string, query url.Values, formats ...string) *Widget {
	return &Widget{Asset: *New(base, path, query, formats...)}
}
