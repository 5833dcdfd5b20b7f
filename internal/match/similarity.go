package match

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"arbscan/internal/domain"
)

const (
	eventMatchScore = 95
	// jaccardFloor is the minimum token-set overlap before a pair is worth
	// scoring at all.
	jaccardFloor = 0.25
	// entityBoost is added per overlapping named entity.
	entityBoost = 15
	// timeFrameBoost is added once when the sides share a time-frame token.
	timeFrameBoost = 10
	// minScoreWithoutEntity zeroes lexical-only scores: token overlap alone
	// is not trusted without an anchoring entity.
	minScoreWithoutEntity = 60
)

// stopWords are high-frequency question words that carry no market identity.
// Tokens of length <= 2 are dropped unconditionally before this list applies.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "will": true, "with": true,
	"that": true, "this": true, "from": true, "what": true, "when": true,
	"who": true, "how": true, "are": true, "was": true, "does": true,
	"did": true, "has": true, "have": true, "its": true, "their": true,
	"there": true, "than": true, "then": true, "into": true, "before": true,
	"after": true, "during": true, "end": true, "happen": true,
}

// phraseCanon rewrites multi-word phrases before tokenization.
var phraseCanon = [][2]string{
	{"united states of america", "us"},
	{"united states", "us"},
	{"midterm elections", "midterms"},
	{"midterm election", "midterms"},
}

// tokenCanon folds per-token spelling variants onto one canonical form so the
// Jaccard intersection sees them as equal.
var tokenCanon = map[string]string{
	"gop": "republican", "rnc": "republican", "republicans": "republican",
	"dem": "democratic", "dems": "democratic", "dnc": "democratic",
	"democrat": "democratic", "democrats": "democratic",
	"usa": "us", "america": "us", "american": "us",
	"january": "jan", "february": "feb", "march": "mar", "april": "apr",
	"june": "jun", "july": "jul", "august": "aug", "september": "sep",
	"october": "oct", "november": "nov", "december": "dec",
}

var punctRE = regexp.MustCompile(`[^\w\s]`)

// tokenize normalizes a title into its comparison token set: lowercase,
// phrase and token canonicalization, punctuation stripped, short tokens and
// stop words dropped.
func tokenize(title string) map[string]bool {
	s := strings.ToLower(title)
	for _, pc := range phraseCanon {
		s = strings.ReplaceAll(s, pc[0], pc[1])
	}
	s = punctRE.ReplaceAllString(s, " ")

	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		if canon, ok := tokenCanon[tok]; ok {
			tok = canon
		}
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		tokens[tok] = true
	}
	return tokens
}

// jaccard computes |intersection| / |union| over two token sets, 0 when the
// union is empty.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func intersect(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func disjoint(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}

// Score decides whether two listings refer to the same real-world question,
// returning a 0-100 confidence and a human-readable reason. A zero score
// means "do not pair these": a wrong match commits real capital to two
// unrelated bets, so every ambiguity resolves toward zero.
func Score(a, b domain.MarketListing) (int, string) {
	// Curated event patterns trump everything else.
	if label := sharedEvent(a.Title, b.Title); label != "" {
		return eventMatchScore, label
	}

	bagA := ExtractEntities(a.Title)
	bagB := ExtractEntities(b.Title)

	// Hard vetoes: a concrete conflicting signal on both sides kills the pair
	// no matter how similar the remaining words are.
	if bagA.Party != "" && bagB.Party != "" && bagA.Party != bagB.Party {
		return 0, ""
	}
	if len(bagA.States) > 0 && len(bagB.States) > 0 && disjoint(bagA.States, bagB.States) {
		return 0, ""
	}
	if len(bagA.TimeFrames) > 0 && len(bagB.TimeFrames) > 0 && disjoint(bagA.TimeFrames, bagB.TimeFrames) {
		return 0, ""
	}

	tokensA := tokenize(a.Title)
	tokensB := tokenize(b.Title)
	j := jaccard(tokensA, tokensB)
	if j < jaccardFloor {
		return 0, ""
	}

	// Same candidate at a different date, or the same topic with a different
	// target, shares most tokens. Disjoint years or numbers are decisive.
	if len(bagA.Years) > 0 && len(bagB.Years) > 0 && disjoint(bagA.Years, bagB.Years) {
		return 0, ""
	}
	if len(bagA.Numbers) > 0 && len(bagB.Numbers) > 0 && disjoint(bagA.Numbers, bagB.Numbers) {
		return 0, ""
	}

	shared := intersect(bagA.Entities, bagB.Entities)

	score := int(math.Round(j * 100))
	score += entityBoost * len(shared)
	if score > 100 {
		score = 100
	}
	if !disjoint(bagA.TimeFrames, bagB.TimeFrames) {
		score += timeFrameBoost
		if score > 100 {
			score = 100
		}
	}

	if len(shared) == 0 && score < minScoreWithoutEntity {
		return 0, ""
	}

	if len(shared) > 0 {
		return score, "match: " + strings.Join(shared, ", ")
	}

	common := intersect(tokensA, tokensB)
	if len(common) > 4 {
		common = common[:4]
	}
	return score, "similar: " + strings.Join(common, " ")
}
