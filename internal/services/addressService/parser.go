package addressservice

import (
	"fmt"
	"regexp"
	"strings"
)

// Component is one labeled token of a parsed address.
type Component struct {
	Value string
	Label string
}

// Parser decomposes a free-text address into labeled components.
type Parser interface {
	Parse(address string) ([]Component, error)
}

// RepeatedLabelError reports a structural parse conflict: a label that may
// appear only once was found twice. Parsed carries the components labeled
// so far, for diagnostics.
type RepeatedLabelError struct {
	Label    string
	Original string
	Parsed   string
}

func (e *RepeatedLabelError) Error() string {
	return fmt.Sprintf("repeated label %q while parsing %q", e.Label, e.Original)
}

// Token classification patterns, first match wins.
var (
	zipRe    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	numberRe = regexp.MustCompile(`^\d+[A-Za-z]?$`)
	unitRe   = regexp.MustCompile(`^#?\d+[A-Za-z]?$`)
)

var directionals = map[string]bool{
	"n": true, "s": true, "e": true, "w": true,
	"ne": true, "nw": true, "se": true, "sw": true,
	"north": true, "south": true, "east": true, "west": true,
}

var postTypes = map[string]bool{
	"st": true, "street": true, "ave": true, "avenue": true,
	"blvd": true, "boulevard": true, "rd": true, "road": true,
	"dr": true, "drive": true, "ln": true, "lane": true,
	"ct": true, "court": true, "pl": true, "place": true,
	"way": true, "pkwy": true, "parkway": true, "hwy": true,
	"highway": true, "ter": true, "terrace": true, "cir": true,
	"circle": true, "sq": true, "square": true,
}

var occupancyTypes = map[string]bool{
	"apt": true, "apartment": true, "unit": true, "ste": true,
	"suite": true, "fl": true, "floor": true, "rm": true, "room": true,
}

var stateAbbrevs = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true,
	"co": true, "ct": true, "de": true, "dc": true, "fl": true,
	"ga": true, "hi": true, "id": true, "il": true, "in": true,
	"ia": true, "ks": true, "ky": true, "la": true, "me": true,
	"md": true, "ma": true, "mi": true, "mn": true, "ms": true,
	"mo": true, "mt": true, "ne": true, "nv": true, "nh": true,
	"nj": true, "nm": true, "ny": true, "nc": true, "nd": true,
	"oh": true, "ok": true, "or": true, "pa": true, "ri": true,
	"sc": true, "sd": true, "tn": true, "tx": true, "ut": true,
	"vt": true, "va": true, "wa": true, "wv": true, "wi": true,
	"wy": true,
}

// Labels that may appear at most once per address.
var singletonLabels = map[string]bool{
	"AddressNumber": true,
	"ZipCode":       true,
	"StateName":     true,
}

// tokenParser labels whitespace-separated address tokens with a pattern
// table, in US street-address order: address number, optional directional,
// street name, street post type, occupancy, place names, state, ZIP.
type tokenParser struct{}

// NewParser returns the default address parser.
func NewParser() Parser {
	return tokenParser{}
}

func (tokenParser) Parse(address string) ([]Component, error) {
	tokens := strings.Fields(address)

	components := make([]Component, 0, len(tokens))
	seen := make(map[string]bool, len(singletonLabels))
	afterPostType := false
	expectUnit := false

	for _, token := range tokens {
		label := classify(token, len(components), afterPostType, expectUnit)

		if singletonLabels[label] && seen[label] {
			return nil, &RepeatedLabelError{
				Label:    label,
				Original: address,
				Parsed:   joinValues(components),
			}
		}
		seen[label] = true

		switch label {
		case "StreetNamePostType":
			afterPostType = true
		case "OccupancyType":
			expectUnit = true
		default:
			expectUnit = false
		}

		components = append(components, Component{Value: token, Label: label})
	}

	return components, nil
}

func classify(token string, position int, afterPostType, expectUnit bool) string {
	lower := strings.ToLower(strings.Trim(token, ",."))

	switch {
	case expectUnit && unitRe.MatchString(lower):
		return "OccupancyIdentifier"
	case zipRe.MatchString(lower):
		return "ZipCode"
	case numberRe.MatchString(lower):
		return "AddressNumber"
	case occupancyTypes[lower]:
		return "OccupancyType"
	case !afterPostType && position > 0 && postTypes[lower]:
		return "StreetNamePostType"
	case stateAbbrevs[lower] && (afterPostType || position > 0):
		return "StateName"
	case directionals[lower] && !afterPostType:
		return "StreetNamePreDirectional"
	case afterPostType:
		return "PlaceName"
	default:
		return "StreetName"
	}
}

func joinValues(components []Component) string {
	values := make([]string, len(components))
	for i, c := range components {
		values[i] = c.Value
	}
	return strings.Join(values, " ")
}
