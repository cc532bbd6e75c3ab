package reconcile

import (
	"context"
	"path/filepath"

	"assetsync/internal/assetindex"
	"assetsync/internal/assetname"
	"assetsync/internal/zone"
)

// matched is a file whose embedded id resolved to an index record.
type matched struct {
	entry  zone.Entry
	record assetindex.Asset
}

// eachMatch walks the mirror and calls fn once per non-ignored file whose id
// is in the index. The index and lock files are passed over silently. Ignored, unmatched, and unreadable entries are reported and
// skipped without delay. fn runs to completion before the next entry is read.
func (r *run) eachMatch(ctx context.Context, byID map[string]assetindex.Asset, fn func(matched) error) error {
	skip := map[string]struct{}{
		assetindex.Path(r.layout.Root):                   {},
		filepath.Join(r.layout.Root, assetindex.LockFile): {},
	}
	for entry, err := range r.layout.Walk() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			r.emit(Event{Kind: EventTraversal, Err: err})
			continue
		}
		if _, ok := skip[entry.Path]; ok {
			continue
		}
		if entry.Intent == zone.Ignored {
			r.emit(Event{Kind: EventIgnored, Path: entry.Path})
			continue
		}
		id, err := assetname.Decode(entry.Name)
		if err != nil {
			r.emit(Event{Kind: EventNoMatch, Path: entry.Path, Err: err})
			continue
		}
		record, ok := byID[id]
		if !ok {
			r.emit(Event{Kind: EventNoMatch, AssetID: id, Path: entry.Path})
			continue
		}
		if err := fn(matched{entry: entry, record: record}); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func loadIndex(root string) ([]assetindex.Asset, map[string]assetindex.Asset, error) {
	records, err := assetindex.Load(root)
	if err != nil {
		return nil, nil, err
	}
	return records, assetindex.ByID(records), nil
}
