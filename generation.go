package ogcard

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Canvas defaults applied when the caller leaves a dimension unset.
const (
	DefaultWidth  = 1200
	DefaultHeight = 628
)

// GenerationConfig is the caller-supplied rendering configuration. Zero
// values mean "use the default"; a caller value always wins over a default.
type GenerationConfig struct {
	Width  int              `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height int              `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
	Fonts  []FontDescriptor `json:"fonts" yaml:"fonts" mapstructure:"fonts"`

	// Debug asks the engine to draw layout boxes.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty" mapstructure:"debug"`
	// EmbedFont embeds glyph paths instead of <text> nodes. Nil leaves the
	// engine default.
	EmbedFont *bool `json:"embedFont,omitempty" yaml:"embed_font,omitempty" mapstructure:"embed_font"`
	// GraphemeImages maps graphemes (emoji) to image URLs.
	GraphemeImages map[string]string `json:"graphemeImages,omitempty" yaml:"grapheme_images,omitempty" mapstructure:"grapheme_images"`
	// Options are passed to the engine verbatim. They never override width,
	// height or fonts.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
}

// Validate reports caller errors that no step can recover from.
func (c GenerationConfig) Validate() error {
	if c.Width < 0 {
		return newError(ErrInvalidInput, "width", fmt.Errorf("negative width %d", c.Width))
	}
	if c.Height < 0 {
		return newError(ErrInvalidInput, "height", fmt.Errorf("negative height %d", c.Height))
	}
	return nil
}

// ResolvedConfig is the configuration handed to the engine. It is built once
// per generation and never shared.
type ResolvedConfig struct {
	Width          int
	Height         int
	Fonts          []LoadedFont
	Debug          bool
	EmbedFont      *bool
	GraphemeImages map[string]string
	Options        map[string]any
}

var reservedOptions = []string{"width", "height", "fonts", "debug", "embedFont", "graphemeImages"}

// Resolve merges cfg over the defaults and replaces the font descriptors with
// the loaded fonts.
func Resolve(cfg GenerationConfig, fonts []LoadedFont) ResolvedConfig {
	rc := ResolvedConfig{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Fonts:     fonts,
		Debug:     cfg.Debug,
		EmbedFont: cfg.EmbedFont,
	}
	if rc.Fonts == nil {
		rc.Fonts = []LoadedFont{}
	}
	if cfg.Width != 0 {
		rc.Width = cfg.Width
	}
	if cfg.Height != 0 {
		rc.Height = cfg.Height
	}
	if len(cfg.GraphemeImages) > 0 {
		rc.GraphemeImages = maps.Clone(cfg.GraphemeImages)
	}
	if len(cfg.Options) > 0 {
		rc.Options = maps.Clone(cfg.Options)
		for _, k := range reservedOptions {
			delete(rc.Options, k)
		}
	}
	return rc
}

// MarshalJSON flattens Options next to the typed fields, which is the shape
// satori-compatible engines expect.
func (rc ResolvedConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(rc.Options)+6)
	maps.Copy(out, rc.Options)
	out["width"] = rc.Width
	out["height"] = rc.Height
	out["fonts"] = rc.Fonts
	if rc.Debug {
		out["debug"] = true
	}
	if rc.EmbedFont != nil {
		out["embedFont"] = *rc.EmbedFont
	}
	if len(rc.GraphemeImages) > 0 {
		out["graphemeImages"] = rc.GraphemeImages
	}
	return json.Marshal(out)
}
