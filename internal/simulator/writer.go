package simulator

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/cloudwriter"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// BatchWriter renders the generated feeds to the output directory as NDJSON
// and parquet files plus the validation report, and optionally mirrors the
// files to S3. Any write failure is fatal to the run; partial output would
// invalidate downstream tests.
type BatchWriter struct {
	cfg *models.Config
}

func NewBatchWriter(cfg *models.Config) *BatchWriter {
	return &BatchWriter{cfg: cfg}
}

// WriteAll writes every output artefact for the run.
func (w *BatchWriter) WriteAll(orderEvents []models.OrderEvent, courierEvents []models.CourierEvent, report *ValidationReport) error {
	if err := os.MkdirAll(w.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.cfg.OutputDir, err)
	}

	writeJSON := w.cfg.OutputFormat == "json" || w.cfg.OutputFormat == "both"
	writeParquet := w.cfg.OutputFormat == "parquet" || w.cfg.OutputFormat == "both"

	if writeJSON {
		if err := writeNDJSON(w.path(models.FeedOrderEvents+".json"), orderEvents); err != nil {
			return err
		}
		if err := writeNDJSON(w.path(models.FeedCourierEvents+".json"), courierEvents); err != nil {
			return err
		}
	}

	if writeParquet {
		if err := writeParquetFile(w.path(models.FeedOrderEvents+".parquet"), new(models.OrderEvent), len(orderEvents), func(pw *writer.ParquetWriter) error {
			for i := range orderEvents {
				if err := pw.Write(orderEvents[i]); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
		if err := writeParquetFile(w.path(models.FeedCourierEvents+".parquet"), new(models.CourierEvent), len(courierEvents), func(pw *writer.ParquetWriter) error {
			for i := range courierEvents {
				if err := pw.Write(courierEvents[i]); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if err := w.writeReport(report); err != nil {
		return err
	}

	if w.cfg.OutputDestination == "s3" {
		if err := w.uploadToS3(); err != nil {
			return err
		}
	}
	return nil
}

func (w *BatchWriter) path(name string) string {
	return filepath.Join(w.cfg.OutputDir, name)
}

func writeNDJSON[E any](path string, events []E) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	bar := progressbar.Default(int64(len(events)), "writing "+filepath.Base(path))
	enc := json.NewEncoder(f)
	for i := range events {
		if err := enc.Encode(events[i]); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		bar.Add(1)
	}
	log.Printf("Written %d events -> %s", len(events), path)
	return nil
}

func writeParquetFile(path string, schema interface{}, count int, writeRows func(*writer.ParquetWriter) error) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer for %s: %w", path, err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	if err := writeRows(pw); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	log.Printf("Written %d events -> %s", count, path)
	return nil
}

func (w *BatchWriter) writeReport(report *ValidationReport) error {
	path := w.path("validation_report.json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal validation report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("Written validation report -> %s", path)
	return nil
}

// uploadToS3 mirrors every generated file to the configured bucket under the
// output directory's base name.
func (w *BatchWriter) uploadToS3() error {
	factory, err := cloudwriter.NewS3WriterFactory(w.cfg.S3Region)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(w.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to list output directory: %w", err)
	}
	prefix := filepath.Base(w.cfg.OutputDir)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(w.path(entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s for upload: %w", entry.Name(), err)
		}
		cw, err := factory.NewWriter(w.cfg.S3Bucket, prefix+"/"+entry.Name())
		if err != nil {
			return err
		}
		if _, err := cw.Write(data); err != nil {
			return fmt.Errorf("failed to buffer %s for upload: %w", entry.Name(), err)
		}
		if err := cw.Close(); err != nil {
			return err
		}
		log.Printf("Uploaded %s -> s3://%s/%s/%s", entry.Name(), w.cfg.S3Bucket, prefix, entry.Name())
	}
	return nil
}
