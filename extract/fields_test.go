package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/fundscout/config"
	"github.com/use-agent/fundscout/engine"
	"github.com/use-agent/fundscout/models"
)

// fakeEngine serves canned bodies by URL and records the fetch order.
type fakeEngine struct {
	pages     map[string]string
	errs      map[string]error
	truncated map[string]bool
	fetched   []string
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Fetch(_ context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	f.fetched = append(f.fetched, req.URL)
	if err, ok := f.errs[req.URL]; ok {
		return nil, err
	}
	body, ok := f.pages[req.URL]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", req.URL)
	}
	return &engine.FetchResult{
		Body:       []byte(body),
		StatusCode: 200,
		FinalURL:   req.URL,
		EngineName: f.Name(),
		Truncated:  f.truncated[req.URL],
	}, nil
}

const (
	campaignURL  = "https://www.gofundme.com/f/clinic?qid=abc"
	donationsURL = "https://www.gofundme.com/f/clinic/donations?qid=abc"
)

func TestFieldExtractor_Extract(t *testing.T) {
	fe := &fakeEngine{pages: map[string]string{
		campaignURL:  fullCampaignHTML,
		donationsURL: donationsPageText,
	}}
	x := NewFieldExtractor(fe, config.FieldsConfig{DescriptionFormat: "text"}, "https://www.gofundme.com")

	rec, err := x.Extract(context.Background(), campaignURL)
	require.NoError(t, err)

	assert.Equal(t, []string{campaignURL, donationsURL}, fe.fetched)
	assert.Equal(t, campaignURL, rec.URL)
	require.NotNil(t, rec.Title)
	assert.Equal(t, "Help rebuild the clinic", *rec.Title)
	require.NotNil(t, rec.Country)
	assert.Equal(t, "CA", *rec.Country)

	keys := make([]string, 0)
	for _, f := range rec.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		models.ColURL, models.ColTitle, models.ColTags, models.ColCurrentAmount, models.ColTotalAmount,
		models.ColDescription, models.ColCreated, models.ColLaunchDate, models.ColCountry,
		models.ColDonationCount, models.ColIsCharity,
	}, keys)
}

func TestFieldExtractor_NoQidFetchesSamePageTwice(t *testing.T) {
	u := "https://www.gofundme.com/f/plain"
	fe := &fakeEngine{pages: map[string]string{u: sparseCampaignHTML}}
	x := NewFieldExtractor(fe, config.FieldsConfig{}, "")

	rec, err := x.Extract(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, []string{u, u}, fe.fetched)
	assert.Nil(t, rec.Country)
	assert.Equal(t, []models.Field{
		{Key: models.ColURL, Value: u},
		{Key: models.ColTitle, Value: "Only a title"},
		{Key: models.ColTags, Value: []string{}},
		{Key: models.ColDescription, Value: "Story"},
	}, rec.Fields())
}

func TestFieldExtractor_FetchErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name     string
		errs     map[string]error
		wantCode string
	}{
		{"campaign page", map[string]error{campaignURL: boom}, models.ErrCodeFetch},
		{"donations page", map[string]error{donationsURL: boom}, models.ErrCodeFetch},
		{"deadline", map[string]error{campaignURL: context.DeadlineExceeded}, models.ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := &fakeEngine{
				pages: map[string]string{campaignURL: fullCampaignHTML, donationsURL: donationsPageText},
				errs:  tt.errs,
			}
			x := NewFieldExtractor(fe, config.FieldsConfig{}, "")

			rec, err := x.Extract(context.Background(), campaignURL)
			require.Error(t, err)
			assert.Nil(t, rec)

			var ce *models.CrawlError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantCode, ce.Code)
		})
	}
}

func TestFieldExtractor_WarnsOnTruncatedDonationsPage(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	fe := &fakeEngine{
		pages:     map[string]string{campaignURL: fullCampaignHTML, donationsURL: donationsPageText},
		truncated: map[string]bool{donationsURL: true},
	}
	x := NewFieldExtractor(fe, config.FieldsConfig{}, "")

	rec, err := x.Extract(context.Background(), campaignURL)
	require.NoError(t, err)
	require.NotNil(t, rec.Country)

	out := logs.String()
	assert.Contains(t, out, "page body truncated")
	assert.Contains(t, out, "page=donations")
	assert.NotContains(t, out, "page=campaign")
}
