package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExportFile is the JSON document shape for cache backup and migration.
type ExportFile struct {
	ExportDate        string  `json:"export_date"`
	TotalTranslations int     `json:"total_translations"`
	Translations      []Entry `json:"translations"`
}

// Exporter writes the durable store contents as JSON.
type Exporter struct {
	store *Store
}

// NewExporter creates a new cache exporter.
func NewExporter(store *Store) *Exporter {
	return &Exporter{store: store}
}

// Export writes all non-expired entries to w in JSON format.
func (e *Exporter) Export(w io.Writer) error {
	entries, err := e.store.ExportAll()
	if err != nil {
		return fmt.Errorf("collecting cache entries: %w", err)
	}

	doc := ExportFile{
		ExportDate:        time.Now().UTC().Format(time.RFC3339),
		TotalTranslations: len(entries),
		Translations:      entries,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports the cache to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (e *Exporter) ExportToFile(path string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f)
}

// Importer loads exported entries back into the durable store.
type Importer struct {
	store *Store
}

// NewImporter creates a new cache importer.
func NewImporter(store *Store) *Importer {
	return &Importer{store: store}
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Imported int
	Failed   int
}

// Import reads an export document and upserts each entry. Malformed
// entries are skipped and counted, not fatal to the batch.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var doc ExportFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	imported, failed := i.store.ImportBatch(doc.Translations)
	return &ImportResult{Imported: imported, Failed: failed}, nil
}

// ImportFromFile imports cache entries from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}
