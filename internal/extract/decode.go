package extract

import (
	"iter"
	"regexp"
	"strconv"
)

// DefaultRampBaseURL prefixes a ramp slug to form its detail page URL.
const DefaultRampBaseURL = "https://www.batramper.se/ramp/"

var (
	recordPattern = regexp.MustCompile(`\{latLng:\[([0-9.]+),([0-9.]+)\],\s*options:\{icon:\s*"[^"]+"\},\s*data:"<span class='infoText'>([^<]+)<br><a href='/ramp/([^']+)'>Mer info</a>"\}`)
	idPattern     = regexp.MustCompile(`-(\d+)$`)
)

// Decode returns the records found in block, in order of appearance. The
// sequence is lazy and can be ranged over more than once. Literals that do
// not match the marker shape in full, or whose coordinates do not parse, are
// skipped.
func Decode(block, baseURL string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		pos := 0
		for pos < len(block) {
			loc := recordPattern.FindStringSubmatchIndex(block[pos:])
			if loc == nil {
				return
			}
			sub := func(n int) string {
				return block[pos+loc[2*n] : pos+loc[2*n+1]]
			}
			rec, ok := newRecord(sub(1), sub(2), sub(3), sub(4), baseURL)
			pos += loc[1]
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func newRecord(lat, lng, name, slug, baseURL string) (Record, bool) {
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Record{}, false
	}
	longitude, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Record{}, false
	}
	return Record{
		ID:        DeriveID(slug),
		Name:      name,
		Latitude:  latitude,
		Longitude: longitude,
		Slug:      slug,
		URL:       baseURL + slug,
	}, true
}

// DeriveID returns the trailing "-<digits>" run of slug, or slug itself when
// it has none.
func DeriveID(slug string) string {
	if m := idPattern.FindStringSubmatch(slug); m != nil {
		return m[1]
	}
	return slug
}
