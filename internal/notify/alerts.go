package notify

import (
	"fmt"
	"strings"

	"arbscan/internal/domain"
)

// maxAlertOpportunities caps how many opportunities a single alert lists so
// that chat messages stay readable on busy cycles.
const maxAlertOpportunities = 5

// maxAlertTitleRunes caps each listing title line inside an alert.
const maxAlertTitleRunes = 80

// OpportunityAlert renders a scan cycle's opportunities into a title and
// message body for chat delivery. Opportunities arrive already ranked, so the
// first entries are the best ones.
func OpportunityAlert(opps []domain.ArbitrageOpportunity) (title, message string) {
	title = fmt.Sprintf("%d arbitrage opportunities found", len(opps))
	if len(opps) == 1 {
		title = "1 arbitrage opportunity found"
	}

	shown := opps
	if len(shown) > maxAlertOpportunities {
		shown = shown[:maxAlertOpportunities]
	}

	var b strings.Builder
	for _, opp := range shown {
		fmt.Fprintf(&b, "%s / %s: %.2f%% ROI (net %.2f%%)\n",
			opp.A.Venue, opp.B.Venue, opp.Roi, opp.NetRoi)
		fmt.Fprintf(&b, "  %s\n", truncate(opp.A.Title, maxAlertTitleRunes))
		fmt.Fprintf(&b, "  %s\n", truncate(opp.B.Title, maxAlertTitleRunes))
	}
	if len(opps) > len(shown) {
		fmt.Fprintf(&b, "... and %d more", len(opps)-len(shown))
	}
	return title, strings.TrimRight(b.String(), "\n")
}

// ScanErrorAlert renders a venue fetch failure for chat delivery.
func ScanErrorAlert(venue domain.Venue, err error) (title, message string) {
	title = fmt.Sprintf("Venue fetch failed: %s", venue)
	return title, truncate(err.Error(), 400)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
// Counting runes rather than bytes keeps multi-byte titles valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// clampRunes hard-cuts s to a channel's message limit without an ellipsis.
func clampRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
