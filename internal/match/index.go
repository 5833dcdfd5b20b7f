package match

import (
	"sort"
	"strings"

	"arbscan/internal/domain"
)

// maxBucketSize caps how many listings a single bucket may hold. High-volume
// listings are preferred when truncating; the cap is the engine's only
// built-in resource limiter.
const maxBucketSize = 20

// topicVocabulary is the fixed list of coarse topic substrings used to build
// topic-year compound buckets.
var topicVocabulary = []string{
	"election", "president", "senate", "house", "governor", "midterms",
	"fed", "rate", "inflation", "recession", "gdp", "tariff", "shutdown",
	"bitcoin", "btc", "ethereum", "eth", "solana", "crypto",
	"nfl", "nba", "mlb", "nhl", "super bowl", "world series",
}

// trackedYears are the year substrings combined with every topic.
var trackedYears = []string{"2024", "2025", "2026", "2027", "2028"}

// indexEntityKeys is the deterministic iteration order over the curated
// entity table; bucket contents must not depend on map ordering.
var indexEntityKeys = sortedKeys(entityPatterns)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildBuckets groups the listing universe by coarse keys so scoring never
// has to walk the full cross-venue product. Two bucket families: topic-year
// compounds (lowercase substring containment of both parts) and one bucket
// per curated named entity (whole-word match).
func buildBuckets(listings []domain.MarketListing) map[string][]domain.MarketListing {
	buckets := make(map[string][]domain.MarketListing)

	for i := range listings {
		l := listings[i]
		lower := strings.ToLower(l.Title)

		for _, topic := range topicVocabulary {
			if !strings.Contains(lower, topic) {
				continue
			}
			for _, year := range trackedYears {
				if strings.Contains(lower, year) {
					key := topic + "-" + year
					buckets[key] = append(buckets[key], l)
				}
			}
		}

		for _, entity := range indexEntityKeys {
			if entityPatterns[entity].MatchString(l.Title) {
				key := "entity:" + entity
				buckets[key] = append(buckets[key], l)
			}
		}
	}

	for key, bucket := range buckets {
		if !crossVenue(bucket) {
			delete(buckets, key)
			continue
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Volume > bucket[j].Volume
		})
		if len(bucket) > maxBucketSize {
			bucket = bucket[:maxBucketSize]
		}
		buckets[key] = bucket
	}
	return buckets
}

// crossVenue reports whether a bucket holds listings from at least two
// venues; single-venue buckets have nothing to compare.
func crossVenue(bucket []domain.MarketListing) bool {
	if len(bucket) < 2 {
		return false
	}
	first := bucket[0].Venue
	for _, l := range bucket[1:] {
		if l.Venue != first {
			return true
		}
	}
	return false
}

// pairKey builds an order-independent identifier for a listing pair, so a
// pair reachable from several buckets is scored exactly once.
func pairKey(a, b domain.MarketListing) string {
	ka, kb := a.Key(), b.Key()
	if ka > kb {
		ka, kb = kb, ka
	}
	return ka + "|" + kb
}

// FindPairs buckets the listings, scores every cross-venue pair exactly once,
// and returns the pairs with a non-zero similarity score. The result is
// deterministic for a given snapshot.
func FindPairs(listings []domain.MarketListing) []domain.MatchCandidatePair {
	buckets := buildBuckets(listings)

	seen := make(map[string]bool)
	var pairs []domain.MatchCandidatePair

	for _, key := range sortedKeys(buckets) {
		bucket := buckets[key]
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				if a.Venue == b.Venue {
					continue
				}
				pk := pairKey(a, b)
				if seen[pk] {
					continue
				}
				seen[pk] = true

				score, reason := Score(a, b)
				if score == 0 {
					continue
				}
				pairs = append(pairs, domain.MatchCandidatePair{
					A: a, B: b, Score: score, Reason: reason,
				})
			}
		}
	}
	return pairs
}
