package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/fundscout/models"
)

// Class markers on a campaign page.
const (
	titleSelector       = ".a-campaign-title"
	progressSelector    = "h2.m-progress-meter-heading"
	descriptionSelector = "div.p-campaign-description"
	createdSelector     = `span[class="m-campaign-byline-created a-created-date"]`
)

// tagPathMarker identifies category links; their text is a tag.
const tagPathMarker = "discover"

// DescribeFunc turns the description element into the stored value.
type DescribeFunc func(s *goquery.Selection) (string, error)

// TextDescription stores the element text as-is.
func TextDescription(s *goquery.Selection) (string, error) {
	return s.Text(), nil
}

// ParseCampaign fills the campaign-page fields of rec. Each field is looked
// up independently; a field whose element is missing stays nil. When several
// elements carry the same marker the last one wins.
func ParseCampaign(rec *models.CampaignRecord, page string, describe DescribeFunc) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return fmt.Errorf("extract: parse campaign page: %w", err)
	}
	if describe == nil {
		describe = TextDescription
	}

	rec.Title = lastText(doc, titleSelector)
	rec.Tags = tags(doc)
	rec.CurrentAmount, rec.TotalAmount = progress(doc)
	rec.Created = lastText(doc, createdSelector)

	if s := doc.Find(descriptionSelector).Last(); s.Length() > 0 {
		desc, err := describe(s)
		if err != nil {
			return fmt.Errorf("extract: render description: %w", err)
		}
		rec.Description = &desc
	}

	return nil
}

func lastText(doc *goquery.Document, selector string) *string {
	s := doc.Find(selector).Last()
	if s.Length() == 0 {
		return nil
	}
	return models.Str(s.Text())
}

// tags collects the text of every link pointing into the discover section,
// in document order and with duplicates.
func tags(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, tagPathMarker) {
			out = append(out, s.Text())
		}
	})
	return out
}

// progress reads the meter heading, e.g. "$1,234 raised of $5,000 goal".
// The current amount is the first word and the goal the second-to-last one.
// This depends on the exact wording of the heading; a heading with fewer
// than two words yields neither amount.
func progress(doc *goquery.Document) (current, total *string) {
	s := doc.Find(progressSelector).Last()
	if s.Length() == 0 {
		return nil, nil
	}
	words := strings.Fields(s.Text())
	if len(words) < 2 {
		return nil, nil
	}
	return models.Str(words[0]), models.Str(words[len(words)-2])
}
