package extract

import (
	"regexp"
	"strings"

	"github.com/use-agent/fundscout/models"
)

// The donations page carries campaign metadata in an embedded JSON state
// blob rather than in markup, so it is matched as plain text.
var (
	launchDatePattern    = regexp.MustCompile(`launch_date":"([0-9-]+)`)
	countryPattern       = regexp.MustCompile(`country":"([A-Z]+)`)
	donationCountPattern = regexp.MustCompile(`donation_count":([0-9]+)`)
	charityPattern       = regexp.MustCompile(`charity":([a-z]+)`)
)

// DonationsURL derives the donations page of a campaign. URLs without a
// "?qid" anchor are returned unchanged.
func DonationsURL(campaignURL string) string {
	return strings.ReplaceAll(campaignURL, "?qid", "/donations?qid")
}

// ParseDonations fills the donations-page fields of rec from the raw page
// text. Every occurrence of a pattern is scanned and the last one is kept.
// A pattern without matches leaves its field nil.
func ParseDonations(rec *models.CampaignRecord, text string) {
	rec.LaunchDate = lastMatch(launchDatePattern, text)
	rec.Country = lastMatch(countryPattern, text)
	rec.DonationCount = lastMatch(donationCountPattern, text)
	rec.IsCharity = lastMatch(charityPattern, text)
}

func lastMatch(re *regexp.Regexp, text string) *string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	return models.Str(matches[len(matches)-1][1])
}
