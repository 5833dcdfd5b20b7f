// Package match decides whether listings from different venues refer to the
// same real-world question. It combines curated event patterns, typed entity
// extraction with hard conflict vetoes, and token-set similarity into a 0-100
// confidence score, and buckets the listing universe so scoring never goes
// quadratic over the full cross-venue product.
package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Party is the political party signal extracted from a title. Empty means no
// party term was found, or both families were present (ambiguous titles carry
// no usable party signal).
type Party string

const (
	PartyRepublican Party = "republican"
	PartyDemocrat   Party = "democrat"
)

// EntityBag is the typed signal set extracted from a single title. It is a
// pure function of the title string, computed on demand and never persisted.
type EntityBag struct {
	Years      map[string]bool // 4-digit years 2024-2039
	Numbers    map[string]bool // normalized decimal strings, k-suffix scaled x1000
	Party      Party
	States     map[string]bool // canonical full state names
	TimeFrames map[string]bool // "q1".."q4" or 3-letter month codes
	Entities   map[string]bool // canonical named-entity keys
}

var (
	yearRE   = regexp.MustCompile(`\b(202[4-9]|203[0-9])\b`)
	numberRE = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)(%|k)?\b`)

	republicanRE = regexp.MustCompile(`(?i)\b(republican(?:s)?|gop|rnc|r)\b`)
	democratRE   = regexp.MustCompile(`(?i)\b(democrat(?:s|ic)?|dem(?:s)?|dnc)\b`)
)

// ExtractEntities parses a title into an EntityBag. It is deterministic and
// total: malformed titles yield empty sets, never an error. The category
// extractors are independent of each other.
func ExtractEntities(title string) EntityBag {
	return EntityBag{
		Years:      extractYears(title),
		Numbers:    extractNumbers(title),
		Party:      extractParty(title),
		States:     extractStates(title),
		TimeFrames: extractTimeFrames(title),
		Entities:   extractNamed(title),
	}
}

func extractYears(title string) map[string]bool {
	years := make(map[string]bool)
	for _, m := range yearRE.FindAllString(title, -1) {
		years[m] = true
	}
	return years
}

// extractNumbers collects numeric tokens, normalizing so that "100k" and
// "100000" compare equal. Single-character tokens are noise (bare digits in
// tickers, list markers) and are dropped.
func extractNumbers(title string) map[string]bool {
	nums := make(map[string]bool)
	for _, m := range numberRE.FindAllStringSubmatch(title, -1) {
		raw, suffix := m[1], strings.ToLower(m[2])
		if len(raw)+len(suffix) <= 1 {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		// Years are their own category; leaking them into the number set
		// would let a shared year mask a real target mismatch ("100k in
		// 2026" vs "200k in 2026" must stay disjoint on numbers).
		if suffix == "" && v >= 2024 && v <= 2039 && len(raw) == 4 {
			continue
		}
		if suffix == "k" {
			v *= 1000
		}
		nums[strconv.FormatFloat(v, 'f', -1, 64)] = true
	}
	return nums
}

// extractParty returns the party signal. When both republican-family and
// democrat-family terms appear the title is ambiguous and no party is
// reported, so the scorer's party veto cannot fire on e.g.
// "Republicans flip a Democrat seat".
func extractParty(title string) Party {
	rep := republicanRE.MatchString(title)
	dem := democratRE.MatchString(title)
	switch {
	case rep && dem:
		return ""
	case rep:
		return PartyRepublican
	case dem:
		return PartyDemocrat
	default:
		return ""
	}
}

func extractStates(title string) map[string]bool {
	states := make(map[string]bool)
	for canonical, re := range statePatterns {
		if re.MatchString(title) {
			states[canonical] = true
		}
	}
	return states
}

var (
	quarterRE = regexp.MustCompile(`q([1-4])`)

	spelledQuarters = map[string]string{
		"firstquarter":  "q1",
		"secondquarter": "q2",
		"thirdquarter":  "q3",
		"fourthquarter": "q4",
	}

	monthCodes = map[string]string{
		"january": "jan", "jan": "jan",
		"february": "feb", "feb": "feb",
		"march": "mar", "mar": "mar",
		"april": "apr", "apr": "apr",
		"may":  "may",
		"june": "jun", "jun": "jun",
		"july": "jul", "jul": "jul",
		"august": "aug", "aug": "aug",
		"september": "sep", "sep": "sep",
		"october": "oct", "oct": "oct",
		"november": "nov", "nov": "nov",
		"december": "dec", "dec": "dec",
	}

	wordRE = regexp.MustCompile(`[a-z]+`)
)

// extractTimeFrames detects quarter expressions and month names, normalized
// to "q1".."q4" and 3-letter month codes. Quarter detection runs on the
// whitespace-stripped lowercase title so "Q 1" and "first quarter" both hit.
func extractTimeFrames(title string) map[string]bool {
	frames := make(map[string]bool)

	lower := strings.ToLower(title)
	stripped := strings.Join(strings.Fields(lower), "")
	for _, m := range quarterRE.FindAllStringSubmatch(stripped, -1) {
		frames["q"+m[1]] = true
	}
	for spelled, code := range spelledQuarters {
		if strings.Contains(stripped, spelled) {
			frames[code] = true
		}
	}
	for _, w := range wordRE.FindAllString(lower, -1) {
		if code, ok := monthCodes[w]; ok {
			frames[code] = true
		}
	}
	return frames
}

func extractNamed(title string) map[string]bool {
	entities := make(map[string]bool)
	for canonical, re := range entityPatterns {
		if re.MatchString(title) {
			entities[canonical] = true
		}
	}
	return entities
}
