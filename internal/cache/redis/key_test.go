package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arbscan/internal/domain"
)

func TestKeyNamespace(t *testing.T) {
	assert.Equal(t, "arbscan:lock:scan", key("lock", "scan"))
	assert.Equal(t, "arbscan:listings:kalshi", listingsKey(domain.VenueKalshi))
	assert.Equal(t, "arbscan:ratelimit:fetch:polymarket", rateLimitKey("fetch:polymarket"))
}
