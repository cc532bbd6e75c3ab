package assetindex_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"assetsync/internal/assetindex"
	"assetsync/internal/services"
)

func TestLoadMissingIndex(t *testing.T) {
	_, err := assetindex.Load(t.TempDir())
	if !errors.Is(err, assetindex.ErrMissingIndex) {
		t.Fatalf("expected ErrMissingIndex, got %v", err)
	}
	if !errors.Is(err, services.ErrMissingIndex) {
		t.Fatalf("expected services marker, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	records := []assetindex.Asset{
		{ID: "42", FileName: "cat.png", URL: "https://cdn/cat", AltText: "", Position: "1", MimeType: "image/png"},
		{ID: "43", FileName: "dog.png", AltText: "a dog", Position: "2"},
	}
	if err := assetindex.Save(root, records); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !assetindex.Exists(root) {
		t.Fatal("expected index to exist")
	}

	data, err := os.ReadFile(filepath.Join(root, assetindex.IndexFile))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  {\n    \"id\": \"42\",") {
		t.Fatalf("expected two-space indentation, got:\n%s", text)
	}
	for _, key := range []string{`"fileName"`, `"url"`, `"altText"`, `"position"`, `"mimeType"`} {
		if !strings.Contains(text, key) {
			t.Fatalf("expected key %s in %s", key, text)
		}
	}

	loaded, err := assetindex.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", loaded, records)
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	root := t.TempDir()
	if err := assetindex.Save(root, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(assetindex.Path(root))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestLoadRejectsMalformedIndex(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(assetindex.Path(root), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := assetindex.Load(root)
	if err == nil || errors.Is(err, assetindex.ErrMissingIndex) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	a := assetindex.Asset{ID: "a", FileName: "a.png", AltText: "old"}
	b := assetindex.Asset{ID: "b", FileName: "b.png"}
	c := assetindex.Asset{ID: "c", FileName: "c.png"}

	tests := []struct {
		name     string
		existing []assetindex.Asset
		incoming []assetindex.Asset
		want     []assetindex.Asset
	}{
		{"empty existing", nil, []assetindex.Asset{a, b}, []assetindex.Asset{a, b}},
		{"appends new only", []assetindex.Asset{a}, []assetindex.Asset{b, a, c}, []assetindex.Asset{a, b, c}},
		{"existing never replaced", []assetindex.Asset{a}, []assetindex.Asset{{ID: "a", AltText: "new"}}, []assetindex.Asset{a}},
		{"dedupes incoming", nil, []assetindex.Asset{b, b, c, b}, []assetindex.Asset{b, c}},
		{"nothing incoming", []assetindex.Asset{c, a}, nil, []assetindex.Asset{c, a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assetindex.Merge(tt.existing, tt.incoming)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Merge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	pulled := []assetindex.Asset{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	once := assetindex.Merge(nil, pulled)
	twice := assetindex.Merge(once, pulled)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("re-merge changed index: %#v vs %#v", once, twice)
	}
	if len(twice) != 3 {
		t.Fatalf("expected one record per id, got %d", len(twice))
	}
}

func TestByID(t *testing.T) {
	got := assetindex.ByID([]assetindex.Asset{{ID: "x", FileName: "first"}, {ID: "y"}, {ID: "x", FileName: "second"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(got))
	}
	if got["x"].FileName != "first" {
		t.Fatalf("expected first record to win, got %q", got["x"].FileName)
	}
}

func TestLockIsExclusive(t *testing.T) {
	root := t.TempDir()
	first, err := assetindex.Lock(root)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if filepath.Base(first.Path()) != assetindex.LockFile {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := assetindex.Lock(root); !errors.Is(err, assetindex.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := assetindex.Lock(root)
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}
