package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchEvents_ConjunctionRequiresEveryPattern(t *testing.T) {
	labels := MatchEvents("Will the Fed cut rates in 2025?")
	assert.True(t, labels["fed-rate-cut-2025"])

	// "cut" missing: the bundle must not fire on a partial hit.
	labels = MatchEvents("Fed rate decision in 2025")
	assert.False(t, labels["fed-rate-cut-2025"])
}

func TestMatchEvents_MultipleLabels(t *testing.T) {
	labels := MatchEvents("Fed rate cut in 2025 or 2026?")
	assert.True(t, labels["fed-rate-cut-2025"])
	assert.True(t, labels["fed-rate-cut-2026"])
}

func TestMatchEvents_NoMatch(t *testing.T) {
	assert.Empty(t, MatchEvents("Will it rain in London tomorrow?"))
	assert.Empty(t, MatchEvents(""))
}

func TestSharedEvent_AcrossPhrasings(t *testing.T) {
	label := sharedEvent(
		"Fed Rate Cut in 2025",
		"Will the Federal Reserve cut interest rates in 2025?",
	)
	assert.Equal(t, "fed-rate-cut-2025", label)
}

func TestSharedEvent_DifferentYearsDoNotShare(t *testing.T) {
	label := sharedEvent(
		"Fed rate cut in 2025",
		"Fed rate cut in 2026",
	)
	assert.Equal(t, "", label)
}
