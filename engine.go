package ogcard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// Engine lays out a node tree and draws it as SVG markup.
type Engine interface {
	Render(ctx context.Context, root *Node, cfg ResolvedConfig) (string, error)
}

// EngineFunc adapts a function into an Engine.
type EngineFunc func(ctx context.Context, root *Node, cfg ResolvedConfig) (string, error)

func (f EngineFunc) Render(ctx context.Context, root *Node, cfg ResolvedConfig) (string, error) {
	return f(ctx, root, cfg)
}

// HTTPEngine talks to a satori-compatible sidecar over HTTP. The endpoint is
// either an http(s) base URL or unix:///path/to.sock.
type HTTPEngine struct {
	base   string
	client *retryablehttp.Client
}

// NewHTTPEngine creates an engine client for endpoint.
func NewHTTPEngine(endpoint string) (*HTTPEngine, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse engine endpoint: %w", err)
	}

	client := newHTTPClient()
	base := strings.TrimRight(endpoint, "/")
	switch u.Scheme {
	case "http", "https":
	case "unix":
		socket := u.Path
		client.HTTPClient = &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socket)
				},
			},
		}
		base = "http://localhost"
	default:
		return nil, fmt.Errorf("unsupported engine endpoint scheme %q", u.Scheme)
	}
	return &HTTPEngine{base: base, client: client}, nil
}

type engineRequest struct {
	Element *Node          `json:"element"`
	Options ResolvedConfig `json:"options"`
}

type engineResponse struct {
	SVG   string `json:"svg"`
	Error *struct {
		Message string `json:"message"`
		Stack   string `json:"stack"`
	} `json:"error"`
}

// Render posts the tree and config to <endpoint>/render.
func (e *HTTPEngine) Render(ctx context.Context, root *Node, cfg ResolvedConfig) (string, error) {
	body, err := json.Marshal(engineRequest{Element: root, Options: cfg})
	if err != nil {
		return "", fmt.Errorf("encode engine request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, e.base+"/render", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result engineResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("engine returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("decode engine response: %w", err)
	}
	if result.Error != nil {
		msg := result.Error.Message
		if result.Error.Stack != "" {
			msg += "\n\nStack:\n" + result.Error.Stack
		}
		return "", errors.New(msg)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("engine returned status %d", resp.StatusCode)
	}
	return result.SVG, nil
}

// Ping checks that the sidecar answers on <endpoint>/healthz.
func (e *HTTPEngine) Ping(ctx context.Context) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, e.base+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine health check returned status %d", resp.StatusCode)
	}
	return nil
}
