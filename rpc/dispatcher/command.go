package dispatcher

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the kind of a parsed command line
type Kind int

const (
	KindUnknown Kind = iota
	KindGetCountries
	KindGetRoads
	KindGetTowns
	KindFinish
)

// String returns the name of the kind, used for logs and metric labels
func (k Kind) String() string {
	switch k {
	case KindGetCountries:
		return "get_countries"
	case KindGetRoads:
		return "get_roads"
	case KindGetTowns:
		return "get_towns"
	case KindFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// ErrIDOutOfRange is reported for country ids that do not fit the store schema
var ErrIDOutOfRange = errors.New("country id out of range")

// Command is a parsed command line.
// CountryID is only set for KindGetRoads and KindGetTowns. Err is set when the
// line matched a command but its id could not be parsed.
type Command struct {
	Kind      Kind
	CountryID int16
	Err       error
}

const (
	prefixGetRoads = "get roads "
	prefixGetTowns = "get towns "
)

// whole line patterns, tried in order
var (
	getCountriesRegex = regexp.MustCompile(`^get countries$`)
	getRoadsRegex     = regexp.MustCompile(`^get roads \d+$`)
	getTownsRegex     = regexp.MustCompile(`^get towns \d+$`)
	finishRegex       = regexp.MustCompile(`^finish$`)
)

// Parse classifies a command line. The first matching pattern wins and every
// line that matches none is KindUnknown, including case variants and lines
// with surrounding whitespace.
func Parse(line string) Command {
	switch {
	case getCountriesRegex.MatchString(line):
		return Command{Kind: KindGetCountries}
	case getRoadsRegex.MatchString(line):
		return parseWithID(KindGetRoads, line, prefixGetRoads)
	case getTownsRegex.MatchString(line):
		return parseWithID(KindGetTowns, line, prefixGetTowns)
	case finishRegex.MatchString(line):
		return Command{Kind: KindFinish}
	default:
		return Command{Kind: KindUnknown}
	}
}

// parseWithID reads the id after the last occurrence of prefix
func parseWithID(kind Kind, line, prefix string) Command {
	raw := line[strings.LastIndex(line, prefix)+len(prefix):]
	id, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return Command{Kind: kind, Err: fmt.Errorf("%w: %s", ErrIDOutOfRange, raw)}
	}
	return Command{Kind: kind, CountryID: int16(id)}
}
