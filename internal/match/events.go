package match

import "regexp"

// eventPattern is one curated high-confidence event: a title identifies the
// event only when every regex in the bundle matches (logical AND). Conjunctive
// bundles are far less prone to accidental overlap than bag-of-words
// similarity, so a shared label is trusted above any lexical score.
type eventPattern struct {
	label    string
	patterns []*regexp.Regexp
}

func newEventPattern(label string, exprs ...string) eventPattern {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + e)
	}
	return eventPattern{label: label, patterns: compiled}
}

// eventTable is the fixed ordered table of curated events. Labels double as
// the match reason shown to users, so keep them short and self-describing.
var eventTable = []eventPattern{
	newEventPattern("presidential-election-2028",
		`\bpresident(ial)?\b`, `\b2028\b`, `\b(win|won|elect)`),
	newEventPattern("midterms-2026-house",
		`\b(midterm|house)\b`, `\b2026\b`, `\b(control|majority|win)`),
	newEventPattern("midterms-2026-senate",
		`\bsenate\b`, `\b2026\b`, `\b(control|majority|win)`),
	newEventPattern("fed-rate-cut-2025",
		`\bfed(eral reserve)?\b`, `\brate`, `\bcut`, `\b2025\b`),
	newEventPattern("fed-rate-cut-2026",
		`\bfed(eral reserve)?\b`, `\brate`, `\bcut`, `\b2026\b`),
	newEventPattern("fed-rate-hike-2026",
		`\bfed(eral reserve)?\b`, `\brate`, `\b(hike|raise|increase)`, `\b2026\b`),
	newEventPattern("us-recession-2026",
		`\brecession\b`, `\b(us|u\.s\.|united states|american?)\b`, `\b2026\b`),
	newEventPattern("government-shutdown-2026",
		`\bgovernment\b`, `\bshutdown\b`, `\b2026\b`),
	newEventPattern("btc-100k-2026",
		`\b(bitcoin|btc)\b`, `\b(100k|100,?000)\b`, `\b2026\b`),
	newEventPattern("btc-150k-2026",
		`\b(bitcoin|btc)\b`, `\b(150k|150,?000)\b`, `\b2026\b`),
	newEventPattern("eth-10k-2026",
		`\b(ethereum|eth)\b`, `\b(10k|10,?000)\b`, `\b2026\b`),
	newEventPattern("super-bowl-2027",
		`\bsuper\s*bowl\b`, `\b(2027|lxi)\b`),
	newEventPattern("world-series-2026",
		`\bworld series\b`, `\b2026\b`),
	newEventPattern("nba-finals-2027",
		`\bnba\b`, `\b(finals|champion)`, `\b2027\b`),
	newEventPattern("tiktok-ban",
		`\btik\s*tok\b`, `\b(ban|divest|shut)`),
}

// MatchEvents tests a title against the curated event table and returns every
// matching label. A title may hit zero, one, or several entries.
func MatchEvents(title string) map[string]bool {
	labels := make(map[string]bool)
	for _, ev := range eventTable {
		all := true
		for _, re := range ev.patterns {
			if !re.MatchString(title) {
				all = false
				break
			}
		}
		if all {
			labels[ev.label] = true
		}
	}
	return labels
}

// sharedEvent returns the first shared event label between two titles, in
// table order, or "" when none is shared.
func sharedEvent(titleA, titleB string) string {
	a := MatchEvents(titleA)
	if len(a) == 0 {
		return ""
	}
	b := MatchEvents(titleB)
	for _, ev := range eventTable {
		if a[ev.label] && b[ev.label] {
			return ev.label
		}
	}
	return ""
}
