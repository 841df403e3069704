package crawl

import (
	"strconv"
	"strings"
)

// SearchURL appends the query to the search endpoint prefix. Spaces become
// '+'; every other character is passed through unescaped.
func SearchURL(prefix, query string) string {
	return prefix + strings.ReplaceAll(query, " ", "+")
}

// PageURL returns the URL of results page cursor. The first page is the
// search URL itself; later pages carry a "&pg=N" suffix.
func PageURL(searchURL string, cursor int) string {
	if cursor > 1 {
		return searchURL + "&pg=" + strconv.Itoa(cursor)
	}
	return searchURL
}
