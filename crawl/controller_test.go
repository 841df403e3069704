package crawl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/models"
)

// fakeRenderer serves canned results pages and records what was rendered.
type fakeRenderer struct {
	pages    map[string]string
	fallback string
	err      error
	rendered []string
}

func (r *fakeRenderer) Render(_ context.Context, url string) (string, error) {
	r.rendered = append(r.rendered, url)
	if r.err != nil {
		return "", r.err
	}
	if p, ok := r.pages[url]; ok {
		return p, nil
	}
	return r.fallback, nil
}

// fakeFields returns a record holding only the URL.
type fakeFields struct {
	failOn    string
	extracted []string
}

func (f *fakeFields) Extract(_ context.Context, u string) (*models.CampaignRecord, error) {
	f.extracted = append(f.extracted, u)
	if u == f.failOn {
		return nil, models.NewCrawlError(models.ErrCodeFetch, "campaign page fetch failed", errors.New("refused"))
	}
	return models.NewCampaignRecord(u), nil
}

// cardsPage renders one result card per href in the search page layout.
func cardsPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div></div><div><div><div></div><div></div><div><div><div><div><div>`)
	for _, h := range hrefs {
		fmt.Fprintf(&b, `<div><a class="a-link a-link--unstyled" href="%s">x</a></div>`, h)
	}
	b.WriteString(`</div></div></div></div></div></div></div></body></html>`)
	return b.String()
}

func testConfig(limit int) config.CrawlConfig {
	return config.CrawlConfig{
		QueryTerms:   []string{"Venezuela", "Covid"},
		PageLimit:    limit,
		SiteOrigin:   "https://www.gofundme.com",
		SearchPrefix: prefix,
	}
}

const base = prefix + "Venezuela+Covid"

func TestController_StopsOnEmptyPageRegardlessOfLimit(t *testing.T) {
	r := &fakeRenderer{pages: map[string]string{
		base:           cardsPage("/f/a?qid=1", "/f/b?qid=2"),
		base + "&pg=2": cardsPage(),
		base + "&pg=3": cardsPage("/f/never"),
	}}
	f := &fakeFields{}

	res, err := NewController(r, f).Run(context.Background(), testConfig(10))
	require.NoError(t, err)

	assert.Equal(t, []string{base, base + "&pg=2"}, r.rendered)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, base, res.SearchURL)
	assert.Equal(t, []string{
		"https://www.gofundme.com/f/a?qid=1",
		"https://www.gofundme.com/f/b?qid=2",
	}, f.extracted)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "https://www.gofundme.com/f/a?qid=1", res.Records[0].URL)
}

func TestController_PageLimit(t *testing.T) {
	tests := []struct {
		limit     int
		wantPages int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			r := &fakeRenderer{fallback: cardsPage("/f/x?qid=1")}
			f := &fakeFields{}

			res, err := NewController(r, f).Run(context.Background(), testConfig(tt.limit))
			require.NoError(t, err)

			assert.Len(t, r.rendered, tt.wantPages)
			assert.Equal(t, tt.wantPages, res.Pages)
			assert.Len(t, res.Records, tt.wantPages)
			assert.Equal(t, PageURL(base, tt.wantPages), r.rendered[len(r.rendered)-1])
		})
	}
}

func TestController_DuplicateLinksAreKept(t *testing.T) {
	r := &fakeRenderer{
		pages:    map[string]string{base: cardsPage("/f/same?qid=1", "/f/same?qid=1")},
		fallback: cardsPage(),
	}
	f := &fakeFields{}

	res, err := NewController(r, f).Run(context.Background(), testConfig(0))
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, res.Records[0].URL, res.Records[1].URL)
}

func TestController_FirstPageEmpty(t *testing.T) {
	r := &fakeRenderer{fallback: `<html><body><p>No results</p></body></html>`}
	f := &fakeFields{}

	res, err := NewController(r, f).Run(context.Background(), testConfig(0))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, res.Records)
	assert.Empty(t, f.extracted)
}

func TestController_RenderErrorAbortsRun(t *testing.T) {
	r := &fakeRenderer{err: errors.New("browser gone")}

	res, err := NewController(r, &fakeFields{}).Run(context.Background(), testConfig(0))
	require.Error(t, err)
	assert.Nil(t, res)

	var ce *models.CrawlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, models.ErrCodeRender, ce.Code)
}

func TestController_FieldErrorAbortsRun(t *testing.T) {
	r := &fakeRenderer{fallback: cardsPage("/f/ok?qid=1", "/f/bad?qid=2", "/f/later?qid=3")}
	f := &fakeFields{failOn: "https://www.gofundme.com/f/bad?qid=2"}

	res, err := NewController(r, f).Run(context.Background(), testConfig(0))
	require.Error(t, err)
	assert.Nil(t, res)

	var ce *models.CrawlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, models.ErrCodeFetch, ce.Code)
	assert.Len(t, f.extracted, 2)
}
