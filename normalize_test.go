package ogcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRemovesRootDimensions(t *testing.T) {
	in := `<svg width="1200" height="628" viewBox="0 0 1200 628">`
	assert.Equal(t, `<svg  viewBox="0 0 1200 628">`, Normalize(in))
}

func TestNormalizeKeepsOtherAttributes(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" stroke-width="2" width="800" height='418' viewBox="0 0 800 418" fill="none"><rect x="0" y="0"/></svg>`
	want := `<svg xmlns="http://www.w3.org/2000/svg" stroke-width="2"  viewBox="0 0 800 418" fill="none"><rect x="0" y="0"/></svg>`
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		`<svg width="1200" height="628" viewBox="0 0 1200 628"></svg>`,
		`<svg height="1" width="2"/>`,
		`<svg viewBox="0 0 1 1"></svg>`,
		`not markup at all`,
		``,
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize(%q)", in)
	}
}

func TestNormalizeOnlyTouchesRoot(t *testing.T) {
	in := `<?xml version="1.0"?>
<svg viewBox="0 0 10 10"><rect width="5" height="5"/></svg>`
	assert.Equal(t, in, Normalize(in))

	in = `<svg viewBox="0 0 10 10" width="10"><rect width="5" height="5"/></svg>`
	want := `<svg viewBox="0 0 10 10"><rect width="5" height="5"/></svg>`
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeIgnoresQuotedText(t *testing.T) {
	in := `<svg aria-label='a width="3" b' data-x="height=4" width="10" height="5"><g/></svg>`
	want := `<svg aria-label='a width="3" b' data-x="height=4" ><g/></svg>`
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeSelfClosingAndUnquoted(t *testing.T) {
	assert.Equal(t, `<svg />`, Normalize(`<svg width="1" height="2"/>`))
	assert.Equal(t, `<svg id=a >`, Normalize(`<svg id=a width=10 height=20>`))
}

func TestNormalizeAfterProlog(t *testing.T) {
	in := "<?xml version=\"1.0\"?>\n<!-- card -->\n<svg\n  width=\"1\"\n  height=\"2\">x</svg>"
	want := "<?xml version=\"1.0\"?>\n<!-- card -->\n<svg\n  >x</svg>"
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeUnparsableInput(t *testing.T) {
	in := `width="1" height="2"`
	assert.Equal(t, in, Normalize(in))
}
