package match

import (
	"regexp"
	"strings"
)

// stateVariants maps each canonical US state name to the title spellings that
// identify it. Full names match case-insensitively; two-letter postal codes
// are listed uppercase and match case-sensitively, because lowercased codes
// like "in", "or" and "me" collide with ordinary English words and a single
// false state hit is enough to veto an otherwise correct pair.
var stateVariants = map[string][]string{
	"alabama":        {"alabama", "AL"},
	"alaska":         {"alaska", "AK"},
	"arizona":        {"arizona", "AZ"},
	"arkansas":       {"arkansas", "AR"},
	"california":     {"california", "CA"},
	"colorado":       {"colorado", "CO"},
	"connecticut":    {"connecticut", "CT"},
	"delaware":       {"delaware", "DE"},
	"florida":        {"florida", "FL"},
	"georgia":        {"georgia", "GA"},
	"hawaii":         {"hawaii", "HI"},
	"idaho":          {"idaho", "ID"},
	"illinois":       {"illinois", "IL"},
	"indiana":        {"indiana", "IN"},
	"iowa":           {"iowa", "IA"},
	"kansas":         {"kansas", "KS"},
	"kentucky":       {"kentucky", "KY"},
	"louisiana":      {"louisiana", "LA"},
	"maine":          {"maine", "ME"},
	"maryland":       {"maryland", "MD"},
	"massachusetts":  {"massachusetts", "MA"},
	"michigan":       {"michigan", "MI"},
	"minnesota":      {"minnesota", "MN"},
	"mississippi":    {"mississippi", "MS"},
	"missouri":       {"missouri", "MO"},
	"montana":        {"montana", "MT"},
	"nebraska":       {"nebraska", "NE"},
	"nevada":         {"nevada", "NV"},
	"new hampshire":  {"new hampshire", "NH"},
	"new jersey":     {"new jersey", "NJ"},
	"new mexico":     {"new mexico", "NM"},
	"new york":       {"new york", "NY"},
	"north carolina": {"north carolina", "NC"},
	"north dakota":   {"north dakota", "ND"},
	"ohio":           {"ohio", "OH"},
	"oklahoma":       {"oklahoma", "OK"},
	"oregon":         {"oregon", "OR"},
	"pennsylvania":   {"pennsylvania", "PA"},
	"rhode island":   {"rhode island", "RI"},
	"south carolina": {"south carolina", "SC"},
	"south dakota":   {"south dakota", "SD"},
	"tennessee":      {"tennessee", "TN"},
	"texas":          {"texas", "TX"},
	"utah":           {"utah", "UT"},
	"vermont":        {"vermont", "VT"},
	"virginia":       {"virginia", "VA"},
	"washington":     {"washington", "WA"},
	"west virginia":  {"west virginia", "WV"},
	"wisconsin":      {"wisconsin", "WI"},
	"wyoming":        {"wyoming", "WY"},
}

// entityVariants maps canonical named-entity keys to their title spellings:
// politicians and public figures, major sports franchises, and the large-cap
// cryptocurrencies that dominate price-target markets. Variants match as
// whole words, case-insensitively.
var entityVariants = map[string][]string{
	// Politicians and public figures.
	"trump":    {"trump", "donald trump"},
	"biden":    {"biden", "joe biden"},
	"harris":   {"harris", "kamala", "kamala harris"},
	"vance":    {"vance", "jd vance"},
	"desantis": {"desantis", "ron desantis"},
	"newsom":   {"newsom", "gavin newsom"},
	"obama":    {"obama", "barack obama", "michelle obama"},
	"clinton":  {"clinton", "hillary clinton"},
	"sanders":  {"sanders", "bernie sanders", "bernie"},
	"aoc":      {"aoc", "ocasio-cortez", "ocasio cortez"},
	"schumer":  {"schumer", "chuck schumer"},
	"pelosi":   {"pelosi", "nancy pelosi"},
	"powell":   {"powell", "jerome powell"},
	"yellen":   {"yellen", "janet yellen"},
	"musk":     {"musk", "elon musk", "elon"},
	"altman":   {"altman", "sam altman"},
	"putin":    {"putin", "vladimir putin"},
	"zelensky": {"zelensky", "zelenskyy", "zelenskiy"},
	"xi":       {"xi jinping"},
	"swift":    {"taylor swift"},

	// Sports franchises.
	"chiefs":    {"chiefs", "kansas city chiefs"},
	"eagles":    {"eagles", "philadelphia eagles"},
	"cowboys":   {"cowboys", "dallas cowboys"},
	"bills":     {"bills", "buffalo bills"},
	"ravens":    {"ravens", "baltimore ravens"},
	"49ers":     {"49ers", "niners", "san francisco 49ers"},
	"packers":   {"packers", "green bay packers"},
	"lakers":    {"lakers", "los angeles lakers"},
	"celtics":   {"celtics", "boston celtics"},
	"warriors":  {"warriors", "golden state warriors"},
	"knicks":    {"knicks", "new york knicks"},
	"yankees":   {"yankees", "new york yankees"},
	"dodgers":   {"dodgers", "los angeles dodgers"},
	"braves":    {"braves", "atlanta braves"},
	"astros":    {"astros", "houston astros"},

	// Cryptocurrencies.
	"bitcoin":  {"bitcoin", "btc"},
	"ethereum": {"ethereum", "eth", "ether"},
	"solana":   {"solana"},
	"dogecoin": {"dogecoin", "doge"},
	"xrp":      {"xrp", "ripple"},
	"cardano":  {"cardano", "ada"},
}

var (
	statePatterns  = compileVariants(stateVariants, true)
	entityPatterns = compileVariants(entityVariants, false)
)

// compileVariants builds one whole-word alternation regex per canonical key.
// When caseSensitiveUpper is set, variants that are entirely uppercase keep
// their case requirement while the rest match case-insensitively.
func compileVariants(variants map[string][]string, caseSensitiveUpper bool) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(variants))
	for canonical, words := range variants {
		var ci, cs []string
		for _, w := range words {
			if caseSensitiveUpper && w == strings.ToUpper(w) {
				cs = append(cs, regexp.QuoteMeta(w))
				continue
			}
			ci = append(ci, regexp.QuoteMeta(w))
		}
		var parts []string
		if len(ci) > 0 {
			parts = append(parts, `(?i:`+strings.Join(ci, `|`)+`)`)
		}
		if len(cs) > 0 {
			parts = append(parts, strings.Join(cs, `|`))
		}
		patterns[canonical] = regexp.MustCompile(`\b(?:` + strings.Join(parts, `|`) + `)\b`)
	}
	return patterns
}
