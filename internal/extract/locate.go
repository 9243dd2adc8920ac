package extract

import (
	"regexp"
	"strings"
)

// MarkerToken is the property name of the map marker configuration.
const MarkerToken = "marker:"

const valuesToken = "values:["

var (
	markerPattern = regexp.MustCompile(`(?s)marker:\s*\{[^}]*values:\s*\[(.*?)\]\s*\}`)
	valuesPattern = regexp.MustCompile(`(?s)values:\s*\[(.*?)\]\s*\}`)
)

// Strategy is one way of finding the marker block in page text.
type Strategy struct {
	Name string
	Find func(page string) (string, bool)
}

// Match is a located marker block and the strategy that found it.
type Match struct {
	Block    string
	Strategy string
}

// Strategies returns the locate strategies in precedence order.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "marker", Find: patternFinder(markerPattern)},
		{Name: "values", Find: patternFinder(valuesPattern)},
		{Name: "scan", Find: scanValues},
	}
}

// Locate finds the marker block in page. A page without the marker token, or
// one where no strategy succeeds, is reported with ok == false.
func Locate(page string) (Match, bool) {
	return LocateWith(page, Strategies())
}

// LocateWith runs strategies in order and returns the first match.
func LocateWith(page string, strategies []Strategy) (Match, bool) {
	if !strings.Contains(page, MarkerToken) {
		return Match{}, false
	}
	for _, s := range strategies {
		if block, ok := s.Find(page); ok {
			return Match{Block: block, Strategy: s.Name}, true
		}
	}
	return Match{}, false
}

func patternFinder(re *regexp.Regexp) func(string) (string, bool) {
	return func(page string) (string, bool) {
		m := re.FindStringSubmatch(page)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}

// scanValues slices the list following the first "values:[" by counting
// brackets, for pages where the list is not closed the way the patterns expect.
func scanValues(page string) (string, bool) {
	idx := strings.Index(page, valuesToken)
	if idx == -1 {
		return "", false
	}
	start := idx + len(valuesToken)
	end := MatchingBracket(page, start)
	return page[start:end], true
}
