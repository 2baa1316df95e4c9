package ogcard

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sidecar mimics the satori engine: it echoes the requested canvas size.
func sidecar(t *testing.T, fail bool) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Element struct {
				Type string `json:"type"`
			} `json:"element"`
			Options struct {
				Width  int `json:"width"`
				Height int `json:"height"`
				Fonts  []struct {
					Name string `json:"name"`
					Data []byte `json:"data"`
				} `json:"fonts"`
			} `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "Cannot read font", "stack": "at satori"},
			})
			return
		}
		svg := `<svg width="` + strconv.Itoa(req.Options.Width) + `" height="` + strconv.Itoa(req.Options.Height) + `" data-root="` + req.Element.Type + `" data-fonts="` + strconv.Itoa(len(req.Options.Fonts)) + `"></svg>`
		_ = json.NewEncoder(w).Encode(map[string]string{"svg": svg})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestHTTPEngineRender(t *testing.T) {
	srv := httptest.NewServer(sidecar(t, false))
	defer srv.Close()

	engine, err := NewHTTPEngine(srv.URL + "/")
	require.NoError(t, err)

	root, err := Adapt("<div>Hi</div>")
	require.NoError(t, err)
	svg, err := engine.Render(context.Background(), root, Resolve(GenerationConfig{Height: 300}, []LoadedFont{{Name: "A", Data: []byte("x")}}))
	require.NoError(t, err)
	assert.Equal(t, `<svg width="1200" height="300" data-root="div" data-fonts="1"></svg>`, svg)

	assert.NoError(t, engine.Ping(context.Background()))
}

func TestHTTPEngineError(t *testing.T) {
	srv := httptest.NewServer(sidecar(t, true))
	defer srv.Close()

	engine, err := NewHTTPEngine(srv.URL)
	require.NoError(t, err)

	root, err := Adapt("<div>Hi</div>")
	require.NoError(t, err)
	_, err = engine.Render(context.Background(), root, Resolve(GenerationConfig{}, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot read font")
	assert.Contains(t, err.Error(), "at satori")
}

func TestHTTPEngineUnixSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "engine.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	srv := httptest.NewUnstartedServer(sidecar(t, false))
	srv.Listener = ln
	srv.Start()
	defer srv.Close()

	engine, err := NewHTTPEngine("unix://" + socket)
	require.NoError(t, err)

	root, err := Adapt("<p>x</p>")
	require.NoError(t, err)
	svg, err := engine.Render(context.Background(), root, Resolve(GenerationConfig{}, nil))
	require.NoError(t, err)
	assert.Contains(t, svg, `width="1200"`)
}

func TestNewHTTPEngineRejectsScheme(t *testing.T) {
	_, err := NewHTTPEngine("ftp://example.com")
	assert.Error(t, err)
}
