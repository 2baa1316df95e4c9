package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/ogcard"
)

func testServerConfig(t *testing.T) ogcard.ServerConfig {
	t.Helper()
	return ogcard.ServerConfig{
		Addr:          "127.0.0.1:0",
		DatabasePath:  filepath.Join(t.TempDir(), "ogcard.db"),
		EngineURL:     "http://127.0.0.1:1",
		AdminPassword: "pw",
		SessionSecret: "secret",
	}
}

func TestRunServerInitFailsBeforeListening(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.SessionSecret = ""
	app := ogcard.New(cfg, nil)

	err := runServer(context.Background(), app, &bytes.Buffer{})
	assert.ErrorContains(t, err, "SessionSecret is required")
	assert.Nil(t, app.Store)
}

func TestRunServerShutsDownAfterInit(t *testing.T) {
	app := ogcard.New(testServerConfig(t), nil)
	app.Echo.HideBanner = true
	app.Echo.HidePort = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, runServer(ctx, app, &out))
	assert.NotNil(t, app.Store, "Init must finish before shutdown")
	assert.Contains(t, out.String(), "Shutting down")
}
