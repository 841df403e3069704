package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// CardContainerSelector addresses the result cards of a rendered search
// page, one element per card. It is the CSS form of the XPath
// /html/body/div[2]/div/div[3]/div/div[1]/div/div/div.
const CardContainerSelector = "html > body > div:nth-of-type(2) > div > div:nth-of-type(3) > div > div:nth-of-type(1) > div > div > div"

// cardLinkSelector matches the campaign anchors inside a card. The class
// attribute must be exactly this string; extra or reordered classes miss.
const cardLinkSelector = `a[class="a-link a-link--unstyled"]`

var (
	cardContainer = cascadia.MustCompile(CardContainerSelector)
	cardLink      = cascadia.MustCompile(cardLinkSelector)
)

// Links returns the campaign links of a rendered search-results page in
// document order. Duplicates are kept. A page without result cards yields
// an empty slice.
func Links(renderedHTML string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return nil, fmt.Errorf("extract: parse results page: %w", err)
	}

	var fragments []string
	doc.FindMatcher(cardContainer).Each(func(_ int, s *goquery.Selection) {
		inner, err := s.Html()
		if err != nil {
			return
		}
		fragments = append(fragments, inner)
	})

	return LinksFromFragments(fragments), nil
}

// LinksFromFragments parses each fragment as its own document and collects
// the href of every card anchor. Anchors without an href are skipped.
func LinksFromFragments(fragments []string) []string {
	links := []string{}
	for _, fragment := range fragments {
		root, err := html.Parse(strings.NewReader(fragment))
		if err != nil {
			continue
		}
		for _, a := range cascadia.QueryAll(root, cardLink) {
			if href, ok := attr(a, "href"); ok {
				links = append(links, href)
			}
		}
	}
	return links
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
