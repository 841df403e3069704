package crawl

// State is a step of the crawl loop.
type State int

const (
	// StateFetching renders the next results page and extracts its links.
	StateFetching State = iota
	// StateExtracting visits every link of the page just fetched.
	StateExtracting
	// StateContinuing moves on to the following page.
	StateContinuing
	// StateStopped ends the crawl.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateExtracting:
		return "extracting"
	case StateContinuing:
		return "continuing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Next returns the state following s.
//
// linksFound is the number of campaign links on the page just fetched and
// cursor is that page's number. limit is the configured page limit, zero
// when unset. A page without links stops the crawl whatever the limit; the
// page whose cursor equals the limit is still extracted, then the crawl
// stops. A limit of N therefore fetches at most N pages.
func Next(s State, linksFound, cursor, limit int) State {
	switch s {
	case StateFetching:
		if linksFound == 0 {
			return StateStopped
		}
		return StateExtracting
	case StateExtracting:
		if limit > 0 && cursor == limit {
			return StateStopped
		}
		return StateContinuing
	case StateContinuing:
		return StateFetching
	default:
		return StateStopped
	}
}
