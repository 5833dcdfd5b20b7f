package s3blob

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

type memWriter struct {
	objects     map[string][]byte
	contentType map[string]string
	multipart   map[string]bool
}

func newMemWriter() *memWriter {
	return &memWriter{
		objects:     map[string][]byte{},
		contentType: map[string]string{},
		multipart:   map[string]bool{},
	}
}

func (m *memWriter) Put(_ context.Context, path string, data io.Reader, contentType string) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects[path] = b
	m.contentType[path] = contentType
	return nil
}

func (m *memWriter) PutMultipart(_ context.Context, path string, data io.Reader, _ int64) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects[path] = b
	m.multipart[path] = true
	return nil
}

type stubOppStore struct {
	domain.OpportunityStore
	before []domain.ArbitrageOpportunity
}

func (s *stubOppStore) ListBefore(context.Context, time.Time) ([]domain.ArbitrageOpportunity, error) {
	return s.before, nil
}

func TestArchiveSnapshot_WritesDatedVenueObject(t *testing.T) {
	w := newMemWriter()
	a := NewArchiver(w, nil)

	at := time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	listings := []domain.MarketListing{
		{Venue: domain.VenueKalshi, ID: "FED-25", Title: "Fed rate cut in 2025?", YesPrice: 0.6, NoPrice: 0.4},
		{Venue: domain.VenueKalshi, ID: "CPI-26", Title: "CPI above 3% in 2026?", YesPrice: 0.3, NoPrice: 0.7},
	}

	require.NoError(t, a.ArchiveSnapshot(context.Background(), domain.VenueKalshi, listings, at))

	body, ok := w.objects["snapshots/2026-08-28/kalshi-143005.jsonl"]
	require.True(t, ok)
	assert.Equal(t, jsonlContentType, w.contentType["snapshots/2026-08-28/kalshi-143005.jsonl"])

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 2)
	var first domain.MarketListing
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "FED-25", first.ID)
}

func TestArchiveSnapshot_SkipsEmptySnapshot(t *testing.T) {
	w := newMemWriter()
	a := NewArchiver(w, nil)

	require.NoError(t, a.ArchiveSnapshot(context.Background(), domain.VenuePredictIt, nil, time.Now()))
	assert.Empty(t, w.objects)
}

func TestArchiveOpportunities_MonthlyRollup(t *testing.T) {
	w := newMemWriter()
	store := &stubOppStore{before: []domain.ArbitrageOpportunity{
		{ID: "a1", Roi: 11.1}, {ID: "a2", Roi: 5.0}, {ID: "a3", Roi: 3.2},
	}}
	a := NewArchiver(w, store)

	cutoff := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	n, err := a.ArchiveOpportunities(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	body, ok := w.objects["archive/opportunities/2026-07.jsonl"]
	require.True(t, ok)
	assert.Equal(t, 3, strings.Count(string(body), "\n"))
	// Small rollups take the single-request path.
	assert.False(t, w.multipart["archive/opportunities/2026-07.jsonl"])
}
