package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-exporter/internal/archive"
	"github.com/jonathan/resume-exporter/internal/assets"
	"github.com/jonathan/resume-exporter/internal/export"
	"github.com/jonathan/resume-exporter/internal/resume"
)

var (
	batchFormat string
	batchOut    string
)

var batchCmd = &cobra.Command{
	Use:   "batch [records...]",
	Short: "Export multiple resume records into one ZIP archive",
	Long:  `Read several parsed resume records (JSON files), export each in the chosen format, and bundle the documents into a single ZIP. Any bad record fails the whole batch.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchFormat, "format", "pdf", "Output format: pdf or docx")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "Archive path (defaults to the dated archive name)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	format := export.Format(batchFormat)
	if !format.Valid() {
		return fmt.Errorf("unknown format %q (want pdf or docx)", batchFormat)
	}

	items := make([]archive.Item, 0, len(args))
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		rec, err := resume.Decode(raw)
		if err != nil {
			return fmt.Errorf("record %s: %w", path, err)
		}
		items = append(items, archive.Item{Filename: filepath.Base(path), Record: rec})
	}

	ex := export.New(assets.BrandMark())
	blob, err := archive.Build(context.Background(), ex, items, format)
	if err != nil {
		return err
	}

	out := batchOut
	if out == "" {
		out = archive.DownloadName(format, time.Now())
	}
	if err := os.WriteFile(out, blob, 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	fmt.Printf("Wrote %s (%d documents, %d bytes)\n", out, len(items), len(blob))
	return nil
}
