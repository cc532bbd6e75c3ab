package assetindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"assetsync/internal/fileutil"
	"assetsync/internal/services"
)

// IndexFile is the index document name under the mirror root.
const IndexFile = "assets.json"

// ErrMissingIndex reports that no index exists yet; run pull first.
var ErrMissingIndex = fmt.Errorf("%w: %s not found, run pull first", services.ErrMissingIndex, IndexFile)

// Asset is one remote asset as recorded in the index.
type Asset struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	AltText  string `json:"altText"`
	Position string `json:"position"`
	MimeType string `json:"mimeType"`
}

// Path returns the index location for root.
func Path(root string) string {
	return filepath.Join(root, IndexFile)
}

// Exists reports whether an index document is present under root.
func Exists(root string) bool {
	info, err := os.Stat(Path(root))
	return err == nil && !info.IsDir()
}

// Load reads the index under root.
func Load(root string) ([]Asset, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissingIndex
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	var records []Asset
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", Path(root), err)
	}
	return records, nil
}

// Merge returns existing followed by every incoming record whose id is not
// already present. Existing records are never replaced, and duplicate ids
// within incoming keep their first occurrence.
func Merge(existing, incoming []Asset) []Asset {
	merged := make([]Asset, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, record := range existing {
		merged = append(merged, record)
		seen[record.ID] = struct{}{}
	}
	for _, record := range incoming {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		merged = append(merged, record)
	}
	return merged
}

// Save replaces the index under root with records.
func Save(root string, records []Asset) error {
	if records == nil {
		records = []Asset{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := fileutil.WriteFileAtomic(Path(root), data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// ByID keys records by id. The first record wins when ids repeat.
func ByID(records []Asset) map[string]Asset {
	out := make(map[string]Asset, len(records))
	for _, record := range records {
		if _, ok := out[record.ID]; ok {
			continue
		}
		out[record.ID] = record
	}
	return out
}
