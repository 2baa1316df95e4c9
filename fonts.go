package ogcard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/sync/errgroup"
)

// FontStyle is the CSS font-style of a font face.
type FontStyle string

const (
	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

// FontDescriptor references a font asset by URL.
type FontDescriptor struct {
	Name   string    `json:"name" yaml:"name" mapstructure:"name"`
	Weight int       `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
	Style  FontStyle `json:"style,omitempty" yaml:"style,omitempty" mapstructure:"style"`
	URL    string    `json:"url" yaml:"url" mapstructure:"url"`
}

// LoadedFont is a FontDescriptor whose URL has been replaced by the fetched
// payload.
type LoadedFont struct {
	Name   string    `json:"name"`
	Weight int       `json:"weight,omitempty"`
	Style  FontStyle `json:"style,omitempty"`
	Data   []byte    `json:"data"`
}

// FontLoader fetches font payloads. It never retries and imposes no timeout
// of its own.
type FontLoader struct {
	client     *retryablehttp.Client
	verify     bool
	allowFiles bool
	maxSize    int64
}

// FontLoaderOption configures a FontLoader.
type FontLoaderOption func(*FontLoader)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) FontLoaderOption {
	return func(l *FontLoader) {
		l.client.HTTPClient = c
	}
}

// WithFontVerification makes the loader reject payloads that do not parse as
// TrueType/OpenType fonts.
func WithFontVerification() FontLoaderOption {
	return func(l *FontLoader) {
		l.verify = true
	}
}

// WithFileURLs lets the loader read file:// URLs from the local filesystem.
// Only enable it where the descriptors come from a trusted source.
func WithFileURLs() FontLoaderOption {
	return func(l *FontLoader) {
		l.allowFiles = true
	}
}

// WithMaxFontSize rejects payloads larger than n bytes. Zero disables the cap.
func WithMaxFontSize(n int64) FontLoaderOption {
	return func(l *FontLoader) {
		l.maxSize = n
	}
}

// NewFontLoader creates a FontLoader.
func NewFontLoader(opts ...FontLoaderOption) *FontLoader {
	l := &FontLoader{client: newHTTPClient()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// newHTTPClient returns a client that makes exactly one attempt per request
// and hands every response, whatever its status, back to the caller.
func newHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, err
	}
	return client
}

// Load fetches every descriptor concurrently and returns the loaded fonts in
// input order. The first failure is returned once all fetches have finished.
func (l *FontLoader) Load(ctx context.Context, fonts []FontDescriptor) ([]LoadedFont, error) {
	for _, f := range fonts {
		if f.URL == "" {
			return nil, newError(ErrInvalidInput, f.Name, errors.New("font descriptor has no url"))
		}
		if f.Name == "" {
			return nil, newError(ErrInvalidInput, f.URL, errors.New("font descriptor has no name"))
		}
	}

	loaded := make([]LoadedFont, len(fonts))
	var g errgroup.Group
	for i, f := range fonts {
		g.Go(func() error {
			data, err := l.fetch(ctx, f.URL)
			if err != nil {
				return err
			}
			loaded[i] = LoadedFont{
				Name:   f.Name,
				Weight: f.Weight,
				Style:  f.Style,
				Data:   data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func (l *FontLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, newError(ErrInvalidInput, rawURL, err)
	}

	var data []byte
	switch u.Scheme {
	case "http", "https":
		data, err = l.fetchHTTP(ctx, rawURL)
	case "file":
		if !l.allowFiles {
			return nil, newError(ErrInvalidInput, rawURL, errors.New("file urls are not allowed"))
		}
		data, err = l.readFile(u.Path)
	default:
		return nil, newError(ErrInvalidInput, rawURL, fmt.Errorf("unsupported url scheme %q", u.Scheme))
	}
	if err != nil {
		return nil, newError(ErrFetchFailure, rawURL, err)
	}

	if l.verify {
		if _, err := sfnt.Parse(data); err != nil {
			return nil, newError(ErrFetchFailure, rawURL, fmt.Errorf("parse font: %w", err))
		}
	}
	return data, nil
}

func (l *FontLoader) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return l.readAll(resp.Body)
}

func (l *FontLoader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.readAll(f)
}

// readAll reads r, failing once more than maxSize bytes arrive.
func (l *FontLoader) readAll(r io.Reader) ([]byte, error) {
	if l.maxSize > 0 {
		r = io.LimitReader(r, l.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if l.maxSize > 0 && int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("font exceeds %d bytes", l.maxSize)
	}
	return data, nil
}

// CheckRemoteFontURL reports an ErrInvalidInput error unless raw is an
// absolute http or https URL. Servers use it before storing descriptors.
func CheckRemoteFontURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return newError(ErrInvalidInput, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return newError(ErrInvalidInput, raw, errors.New("font url must be http or https"))
	}
	return nil
}
