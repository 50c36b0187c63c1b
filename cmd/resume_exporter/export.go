package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-exporter/internal/assets"
	"github.com/jonathan/resume-exporter/internal/export"
	"github.com/jonathan/resume-exporter/internal/resume"
	"github.com/jonathan/resume-exporter/internal/schemas"
)

var (
	exportInput    string
	exportFormat   string
	exportOut      string
	exportValidate bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one resume record to PDF or DOCX",
	Long:  `Read a parsed resume record (JSON) and write a branded two-column document.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "Path to the resume record JSON (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Output format: pdf or docx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output path (defaults to the candidate name)")
	exportCmd.Flags().BoolVar(&exportValidate, "validate", false, "Validate the record against the JSON schema first")
	_ = exportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format := export.Format(exportFormat)
	if !format.Valid() {
		return fmt.Errorf("unknown format %q (want pdf or docx)", exportFormat)
	}

	raw, err := os.ReadFile(exportInput)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if exportValidate {
		schemaPath := schemas.ResolveSchemaPath(schemas.RecordSchemaFile)
		if schemaPath == "" {
			return fmt.Errorf("schema file %s not found", schemas.RecordSchemaFile)
		}
		if err := schemas.ValidateRecord(schemaPath, raw); err != nil {
			return err
		}
	}

	rec, err := resume.Decode(raw)
	if err != nil {
		return err
	}

	ex := export.New(assets.BrandMark())
	blob, err := ex.Export(rec, format)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = ex.Filename(rec, format)
	}
	if err := os.WriteFile(out, blob, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, len(blob))
	return nil
}
