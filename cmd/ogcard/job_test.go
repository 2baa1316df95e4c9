package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJob(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadJob(t *testing.T) {
	path := writeJob(t, `
template: article
props:
  title: Hello
  tags: [go, svg]
config:
  width: 800
  embed_font: false
  fonts:
    - name: Inter
      weight: 700
      url: https://example.com/inter.ttf
`)
	j, err := readJob(path)
	require.NoError(t, err)

	assert.Equal(t, "article", j.Template)
	assert.Equal(t, "Hello", j.Props["title"])
	assert.Equal(t, []any{"go", "svg"}, j.Props["tags"])
	assert.Equal(t, 800, j.Config.Width)
	require.NotNil(t, j.Config.EmbedFont)
	assert.False(t, *j.Config.EmbedFont)
	require.Len(t, j.Config.Fonts, 1)
	assert.Equal(t, "Inter", j.Config.Fonts[0].Name)
	assert.Equal(t, 700, j.Config.Fonts[0].Weight)
}

func TestReadJobDefaultsProps(t *testing.T) {
	j, err := readJob(writeJob(t, "template: simple\n"))
	require.NoError(t, err)
	assert.NotNil(t, j.Props)
	assert.Empty(t, j.Props)
}

func TestReadJobErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing template", "props:\n  text: hi\n"},
		{"unknown field", "template: simple\ncolour: red\n"},
		{"unknown config field", "template: simple\nconfig:\n  depth: 3\n"},
		{"not yaml", "template: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readJob(writeJob(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := readJob(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLookupTemplate(t *testing.T) {
	tmpl, err := lookupTemplate("article")
	require.NoError(t, err)
	assert.Equal(t, "article", tmpl.Name())

	_, err = lookupTemplate("nope")
	assert.ErrorContains(t, err, `unknown template "nope"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ogcard dev\n", out)
}
