package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultsPage wraps cards in the container layout a rendered search page uses.
func resultsPage(cards ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Search</title></head><body>`)
	b.WriteString(`<div id="header"><a class="a-link a-link--unstyled" href="/f/not-a-card">nav</a></div>`)
	b.WriteString(`<div><div><div></div><div></div><div><div><div><div><div>`)
	for _, c := range cards {
		b.WriteString(`<div class="card">`)
		b.WriteString(c)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></div></div></div></div></div></div></body></html>`)
	return b.String()
}

func TestLinksFromFragments_SkipsAnchorWithoutHref(t *testing.T) {
	fragment := `<a class="a-link a-link--unstyled">no target</a>` +
		`<a class="a-link a-link--unstyled" href="/f/abc">campaign</a>`

	links := LinksFromFragments([]string{fragment})

	assert.Equal(t, []string{"/f/abc"}, links)
}

func TestLinksFromFragments_RequiresExactClassString(t *testing.T) {
	fragment := `<a class="a-link" href="/f/plain">x</a>` +
		`<a class="a-link--unstyled" href="/f/other">y</a>` +
		`<a class="a-link a-link--unstyled extra" href="/f/extra">z</a>` +
		`<a class="a-link--unstyled a-link" href="/f/reordered">r</a>` +
		`<a class="a-link a-link--unstyled" href="/f/match">m</a>`

	assert.Equal(t, []string{"/f/match"}, LinksFromFragments([]string{fragment}))
}

func TestLinks_DocumentOrderWithDuplicates(t *testing.T) {
	page := resultsPage(
		`<a class="a-link a-link--unstyled" href="/f/one?qid=1">one</a>`,
		`<a class="a-link a-link--unstyled" href="/f/two?qid=2">two</a>`+
			`<a class="a-link a-link--unstyled" href="/f/one?qid=1">one again</a>`,
	)

	links, err := Links(page)
	require.NoError(t, err)

	assert.Equal(t, []string{"/f/one?qid=1", "/f/two?qid=2", "/f/one?qid=1"}, links)
}

func TestLinks_IgnoresAnchorsOutsideCards(t *testing.T) {
	links, err := Links(resultsPage(`<a class="a-link a-link--unstyled" href="/f/in">in</a>`))
	require.NoError(t, err)

	assert.NotContains(t, links, "/f/not-a-card")
	assert.Equal(t, []string{"/f/in"}, links)
}

func TestLinks_NoCards(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"empty container", resultsPage()},
		{"different layout", `<html><body><div><a class="a-link a-link--unstyled" href="/f/x">x</a></div></body></html>`},
		{"empty document", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := Links(tt.page)
			require.NoError(t, err)
			assert.Empty(t, links)
		})
	}
}
