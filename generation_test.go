package ogcard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	rc := Resolve(GenerationConfig{}, nil)
	assert.Equal(t, 1200, rc.Width)
	assert.Equal(t, 628, rc.Height)
	assert.NotNil(t, rc.Fonts)
	assert.Empty(t, rc.Fonts)
}

func TestResolveCallerOverridesDefaults(t *testing.T) {
	tests := []struct {
		name          string
		cfg           GenerationConfig
		width, height int
	}{
		{"both", GenerationConfig{Width: 800, Height: 418}, 800, 418},
		{"width only", GenerationConfig{Width: 640}, 640, DefaultHeight},
		{"height only", GenerationConfig{Height: 300}, DefaultWidth, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := Resolve(tt.cfg, nil)
			assert.Equal(t, tt.width, rc.Width)
			assert.Equal(t, tt.height, rc.Height)
		})
	}
}

func TestResolveReplacesFonts(t *testing.T) {
	cfg := GenerationConfig{
		Fonts: []FontDescriptor{{Name: "Inter", URL: "https://example.com/inter.ttf"}},
		Debug: true,
	}
	loaded := []LoadedFont{{Name: "Inter", Data: []byte{1, 2, 3}}}

	rc := Resolve(cfg, loaded)
	assert.Equal(t, loaded, rc.Fonts)
	assert.True(t, rc.Debug)

	b, err := json.Marshal(rc)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "example.com")
}

func TestResolveIsDeterministic(t *testing.T) {
	embed := false
	cfg := GenerationConfig{
		Width:          900,
		EmbedFont:      &embed,
		GraphemeImages: map[string]string{"🙂": "https://example.com/smile.svg"},
		Options:        map[string]any{"pointScaleFactor": 2, "locale": "en"},
	}
	a, err := json.Marshal(Resolve(cfg, nil))
	require.NoError(t, err)
	b, err := json.Marshal(Resolve(cfg, nil))
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestResolvedConfigJSONShape(t *testing.T) {
	embed := true
	cfg := GenerationConfig{
		Height:    400,
		EmbedFont: &embed,
		Options: map[string]any{
			"locale": "de",
			"width":  1,
			"fonts":  "nope",
		},
	}
	b, err := json.Marshal(Resolve(cfg, []LoadedFont{{Name: "A", Weight: 700, Data: []byte("ab")}}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"width": 1200,
		"height": 400,
		"embedFont": true,
		"locale": "de",
		"fonts": [{"name": "A", "weight": 700, "data": "YWI="}]
	}`, string(b))
}

func TestResolveDoesNotAliasCallerMaps(t *testing.T) {
	cfg := GenerationConfig{Options: map[string]any{"locale": "en"}}
	rc := Resolve(cfg, nil)
	rc.Options["locale"] = "fr"
	assert.Equal(t, "en", cfg.Options["locale"])
}

func TestGenerationConfigValidate(t *testing.T) {
	assert.NoError(t, GenerationConfig{}.Validate())
	assert.ErrorIs(t, GenerationConfig{Width: -1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, GenerationConfig{Height: -5}.Validate(), ErrInvalidInput)
}
