package address

import (
	"regexp"
	"strings"
)

// Strategy turns free text into an address, reporting false when the text does
// not have the shape it understands.
type Strategy interface {
	Name() string
	Parse(input string) (PostalAddress, bool)
}

const (
	unitDesignators = `apt|apartment|suite|ste|unit|building|bldg|floor|fl|room|rm|department|dept|lot`
	statePattern    = `([A-Za-z][A-Za-z .]*?)`
	zipPattern      = `(\d{5}(?:-\d{4})?)`
	stateZipSep     = `\s*[,\s]\s*`
)

var (
	// The unit segment is required; addresses without one belong to simple.
	withUnitPattern = regexp.MustCompile(`(?i)^\s*([^,]+?)\s*,\s*` +
		`((?:` + unitDesignators + `)\b|#)\.?\s*([^,]+?)\s*,\s*` +
		`([^,]+?)\s*,\s*` + statePattern + stateZipSep + zipPattern + `\s*$`)

	simplePattern = regexp.MustCompile(`^\s*([^,]+?)\s*,\s*([^,]+?)\s*,\s*` +
		statePattern + stateZipSep + zipPattern + `\s*$`)
)

type withUnit struct{}

func (withUnit) Name() string { return "with-unit" }

func (withUnit) Parse(input string) (PostalAddress, bool) {
	m := withUnitPattern.FindStringSubmatch(input)
	if m == nil {
		return PostalAddress{}, false
	}

	return PostalAddress{
		Street:  strings.TrimSpace(m[1]),
		Street2: m[2] + " " + strings.TrimSpace(m[3]),
		City:    strings.TrimSpace(m[4]),
		State:   NormalizeState(m[5]),
		Zip:     m[6],
	}, true
}

type simple struct{}

func (simple) Name() string { return "simple" }

func (simple) Parse(input string) (PostalAddress, bool) {
	m := simplePattern.FindStringSubmatch(input)
	if m == nil {
		return PostalAddress{}, false
	}

	return PostalAddress{
		Street: strings.TrimSpace(m[1]),
		City:   strings.TrimSpace(m[2]),
		State:  NormalizeState(m[3]),
		Zip:    m[4],
	}, true
}

// degraded always succeeds by keeping the raw input as the street line.
type degraded struct{}

func (degraded) Name() string { return "degraded" }

func (degraded) Parse(input string) (PostalAddress, bool) {
	return PostalAddress{Street: input}, true
}
