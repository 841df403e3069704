package crawl

import "github.com/use-agent/fundscout/models"

// Session is the state of one crawl run. It is owned by a single Controller
// run and discarded once the records have been handed off.
type Session struct {
	Query     string
	PageLimit int

	cursor  int
	pages   int
	records []*models.CampaignRecord
}

// NewSession starts a session on page 1.
func NewSession(query string, pageLimit int) *Session {
	return &Session{Query: query, PageLimit: pageLimit, cursor: 1}
}

// Cursor is the number of the next page to fetch.
func (s *Session) Cursor() int { return s.cursor }

// Advance moves the cursor forward and returns the page number it held.
func (s *Session) Advance() int {
	page := s.cursor
	s.cursor++
	s.pages++
	return page
}

// Pages is the number of results pages fetched so far.
func (s *Session) Pages() int { return s.pages }

// Append adds a record in crawl order.
func (s *Session) Append(rec *models.CampaignRecord) {
	s.records = append(s.records, rec)
}

// Records returns the collected records in crawl order.
func (s *Session) Records() []*models.CampaignRecord { return s.records }
