// Package archive packages batches of exported resumes into a single ZIP
// blob for download.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-exporter/internal/export"
	"github.com/jonathan/resume-exporter/internal/resume"
)

// emitConcurrency bounds parallel document generation within one batch.
const emitConcurrency = 4

// entryStamp pins archive entry timestamps so batch output is deterministic.
var entryStamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Item is one record in a batch export: the original upload filename and
// its parsed record.
type Item struct {
	Filename string
	Record   *resume.Record
}

// EntryName derives the archive entry name: the original filename with its
// trailing extension replaced by the export format's.
func (i Item) EntryName(format export.Format) string {
	base := i.Filename[:len(i.Filename)-len(filepath.Ext(i.Filename))]
	return base + "." + string(format)
}

// Build exports every item in the requested format and collects the blobs
// into one ZIP. Records are emitted in parallel and merged in input order.
// Any single failure aborts the whole batch: there is no partial archive.
func Build(ctx context.Context, ex *export.Exporter, items []Item, format export.Format) ([]byte, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	blobs := make([][]byte, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(emitConcurrency)

	for idx, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			blob, err := ex.Export(item.Record, format)
			if err != nil {
				return fmt.Errorf("export of %q failed: %w", item.Filename, err)
			}
			blobs[idx] = blob
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for idx, item := range items {
		entry, err := w.CreateHeader(&zip.FileHeader{
			Name:     item.EntryName(format),
			Method:   zip.Deflate,
			Modified: entryStamp,
		})
		if err != nil {
			return nil, fmt.Errorf("archive write failed: %w", err)
		}
		if _, err := entry.Write(blobs[idx]); err != nil {
			return nil, fmt.Errorf("archive write failed: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("archive write failed: %w", err)
	}
	return buf.Bytes(), nil
}

// DownloadName is the suggested filename for a batch archive, stamped with
// the export date.
func DownloadName(format export.Format, now time.Time) string {
	return fmt.Sprintf("resumes_%s_%s.zip", format, now.Format("2006-01-02"))
}
