package models

// Column names of a campaign record, in the order they first appear in a row.
const (
	ColURL           = "url"
	ColTitle         = "title"
	ColTags          = "tags"
	ColCurrentAmount = "current_amount"
	ColTotalAmount   = "total_amount"
	ColDescription   = "description"
	ColCreated       = "created"
	ColLaunchDate    = "launch_date"
	ColCountry       = "country"
	ColDonationCount = "donation_count"
	ColIsCharity     = "is_charity"
)

// CampaignRecord is one extracted campaign. Apart from URL and Tags every
// field is optional: a nil pointer means the extraction found nothing, which
// is different from an empty string that was found on the page.
type CampaignRecord struct {
	URL string

	Title         *string
	Tags          []string
	CurrentAmount *string
	TotalAmount   *string
	Description   *string
	Created       *string

	LaunchDate    *string
	Country       *string
	DonationCount *string
	IsCharity     *string
}

// NewCampaignRecord returns a record holding only the URL and an empty tag list.
func NewCampaignRecord(url string) *CampaignRecord {
	return &CampaignRecord{URL: url, Tags: []string{}}
}

// Field is a single present key of a record.
type Field struct {
	Key   string
	Value any // string, or []string for tags
}

// Fields returns the keys present on the record in column order.
func (r *CampaignRecord) Fields() []Field {
	fields := []Field{{Key: ColURL, Value: r.URL}}

	add := func(key string, v *string) {
		if v != nil {
			fields = append(fields, Field{Key: key, Value: *v})
		}
	}

	add(ColTitle, r.Title)
	if r.Tags != nil {
		fields = append(fields, Field{Key: ColTags, Value: r.Tags})
	}
	add(ColCurrentAmount, r.CurrentAmount)
	add(ColTotalAmount, r.TotalAmount)
	add(ColDescription, r.Description)
	add(ColCreated, r.Created)
	add(ColLaunchDate, r.LaunchDate)
	add(ColCountry, r.Country)
	add(ColDonationCount, r.DonationCount)
	add(ColIsCharity, r.IsCharity)

	return fields
}

// Map returns the present fields keyed by column name.
func (r *CampaignRecord) Map() map[string]any {
	fields := r.Fields()
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}
