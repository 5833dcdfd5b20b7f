package notify

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"arbscan/internal/domain"
)

func alertOpp(roi, netRoi float64) domain.ArbitrageOpportunity {
	return domain.ArbitrageOpportunity{
		A:      domain.MarketListing{Venue: domain.VenueKalshi, Title: "Fed rate cut in 2025?"},
		B:      domain.MarketListing{Venue: domain.VenuePolymarket, Title: "Will the Fed cut rates in 2025?"},
		Roi:    roi,
		NetRoi: netRoi,
	}
}

func TestOpportunityAlert_SingularTitle(t *testing.T) {
	title, message := OpportunityAlert([]domain.ArbitrageOpportunity{alertOpp(11.11, 9.5)})

	assert.Equal(t, "1 arbitrage opportunity found", title)
	assert.Contains(t, message, "kalshi / polymarket")
	assert.Contains(t, message, "11.11% ROI (net 9.50%)")
	assert.Contains(t, message, "Fed rate cut in 2025?")
}

func TestOpportunityAlert_CapsListedEntries(t *testing.T) {
	opps := make([]domain.ArbitrageOpportunity, 8)
	for i := range opps {
		opps[i] = alertOpp(5, 4)
	}

	title, message := OpportunityAlert(opps)

	assert.Equal(t, "8 arbitrage opportunities found", title)
	assert.Equal(t, maxAlertOpportunities, strings.Count(message, "% ROI"))
	assert.Contains(t, message, "... and 3 more")
}

func TestScanErrorAlert(t *testing.T) {
	title, message := ScanErrorAlert(domain.VenuePredictIt, errors.New("status 503"))

	assert.Equal(t, "Venue fetch failed: predictit", title)
	assert.Equal(t, "status 503", message)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "toolo...", truncate("toolongstring", 8))
}

func TestTruncate_MultiByteTitles(t *testing.T) {
	// Cutting inside a multi-byte rune must not produce invalid UTF-8.
	title := strings.Repeat("é", 50)
	got := truncate(title, 10)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)

	assert.True(t, utf8.ValidString(truncate("日本の選挙は誰が勝つのか予想する市場", 8)))
}

func TestClampRunes(t *testing.T) {
	assert.Equal(t, "abc", clampRunes("abc", 5))
	assert.Equal(t, "日本の選", clampRunes("日本の選挙", 4))
	assert.True(t, utf8.ValidString(clampRunes(strings.Repeat("ü", 30), 7)))
}
