package extract

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
)

// newMarkdownConverter creates a reusable Converter for campaign stories.
// The base plugin drops script, style and iframe noise; commonmark renders
// paragraphs, lists, links and emphasis.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
}

// MarkdownDescription converts the description element's inner HTML to
// Markdown. Relative links and images are resolved against domain.
func MarkdownDescription(domain string) DescribeFunc {
	conv := newMarkdownConverter()
	return func(s *goquery.Selection) (string, error) {
		inner, err := s.Html()
		if err != nil {
			return "", err
		}
		return conv.ConvertString(inner, converter.WithDomain(domain))
	}
}
