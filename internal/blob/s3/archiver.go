package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"arbscan/internal/domain"
)

// multipartThreshold is the rollup size above which the multipart path is
// used instead of a single PutObject.
const multipartThreshold int64 = 8 * 1024 * 1024

// Archiver writes scan-cycle data to cold storage as JSONL. Two kinds of
// objects are produced: raw venue listing snapshots, one object per venue per
// cycle, and monthly rollups of detected opportunities.
//
// Deletion of archived rows from the primary store is intentionally NOT
// performed here. That is a separate, explicit step to be executed after the
// archive has been verified.
type Archiver struct {
	writer domain.BlobWriter
	opps   domain.OpportunityStore
}

// NewArchiver creates a new Archiver.
func NewArchiver(writer domain.BlobWriter, opps domain.OpportunityStore) *Archiver {
	return &Archiver{writer: writer, opps: opps}
}

// ArchiveSnapshot uploads one venue's listing snapshot from a scan cycle to
// snapshots/YYYY-MM-DD/{venue}-HHMMSS.jsonl.
func (a *Archiver) ArchiveSnapshot(ctx context.Context, venue domain.Venue, listings []domain.MarketListing, at time.Time) error {
	if len(listings) == 0 {
		return nil
	}

	buf, err := marshalJSONL(listings)
	if err != nil {
		return fmt.Errorf("s3blob: archive %s snapshot marshal: %w", venue, err)
	}

	path := fmt.Sprintf("snapshots/%s/%s-%s.jsonl",
		at.UTC().Format("2006-01-02"), venue, at.UTC().Format("150405"))
	if err := a.writer.Put(ctx, path, bytes.NewReader(buf), jsonlContentType); err != nil {
		return fmt.Errorf("s3blob: archive %s snapshot upload: %w", venue, err)
	}
	return nil
}

// ArchiveOpportunities queries all opportunities detected before the cutoff,
// serializes them to JSONL, and uploads the file to
// archive/opportunities/YYYY-MM.jsonl. It returns the number of archived
// records.
func (a *Archiver) ArchiveOpportunities(ctx context.Context, before time.Time) (int64, error) {
	opps, err := a.opps.ListBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("s3blob: archive opportunities query: %w", err)
	}
	if len(opps) == 0 {
		return 0, nil
	}

	buf, err := marshalJSONL(opps)
	if err != nil {
		return 0, fmt.Errorf("s3blob: archive opportunities marshal: %w", err)
	}

	path := fmt.Sprintf("archive/opportunities/%s.jsonl", before.UTC().Format("2006-01"))
	if int64(len(buf)) > multipartThreshold {
		err = a.writer.PutMultipart(ctx, path, bytes.NewReader(buf), minPartSize)
	} else {
		err = a.writer.Put(ctx, path, bytes.NewReader(buf), jsonlContentType)
	}
	if err != nil {
		return 0, fmt.Errorf("s3blob: archive opportunities upload: %w", err)
	}
	return int64(len(opps)), nil
}

// marshalJSONL serialises a slice of values as newline-delimited JSON (JSONL).
// Each element is marshalled as a single compact JSON line followed by '\n'.
func marshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
