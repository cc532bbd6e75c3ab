package reconcile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"assetsync/internal/assetindex"
	"assetsync/internal/assetname"
	"assetsync/internal/services"
	"assetsync/internal/transfer"
	"assetsync/internal/zone"
)

// Puller downloads remote assets into the metadata zone and merges their
// records into the index.
type Puller struct {
	remote Remote
	files  Files
	layout zone.Layout
	opts   []Option
}

// NewPuller constructs a Puller. The default pacing delay is DefaultPullDelay.
func NewPuller(remote Remote, files Files, layout zone.Layout, opts ...Option) *Puller {
	return &Puller{remote: remote, files: files, layout: layout, opts: opts}
}

// Pull fetches up to limit records in pages of PageSize, downloads every
// binary not already somewhere under the mirror, and saves the merged index
// once at the end. A failed page query ends the run before the index is
// written.
func (p *Puller) Pull(ctx context.Context, limit int) (Result, error) {
	r := &run{settings: newSettings(DefaultPullDelay, p.opts), mode: ModePull, layout: p.layout}
	if limit <= 0 {
		return r.result, services.Wrap(services.ErrInvalidArgument, "pull", "limit",
			fmt.Sprintf("limit must be a positive number, got %d", limit), nil)
	}

	session := newDownloadSession(p.layout, func(err error) {
		r.emit(Event{Kind: EventTraversal, Err: err})
	})

	var pulled []assetindex.Asset
	done := 0
	for skip := 0; skip < limit; skip += PageSize {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		first := limit
		if r.pageFirst == FirstPage {
			first = min(PageSize, limit-skip)
		}
		page, err := p.remote.ListAssets(ctx, first, skip)
		if err != nil {
			return r.result, fmt.Errorf("pull page at skip %d: %w", skip, err)
		}
		r.emit(Event{Kind: EventPage, Done: skip, Total: limit, Detail: fmt.Sprintf("first=%d skip=%d records=%d", first, skip, len(page))})

		for _, record := range page {
			if strings.TrimSpace(record.ID) == "" {
				r.emit(Event{Kind: EventFailed, Name: record.FileName, Done: done, Total: limit,
					Err: services.Wrap(services.ErrNoMatch, "pull", record.FileName, "record has no id", nil)})
				continue
			}
			pulled = append(pulled, record)
			kind, path, err := p.fetch(ctx, r, session, record)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return r.result, ctxErr
				}
				r.emit(Event{Kind: EventFailed, AssetID: record.ID, Path: path, Name: record.FileName, Done: done, Total: limit, Err: err})
				continue
			}
			done++
			r.emit(Event{Kind: kind, AssetID: record.ID, Path: path, Name: record.FileName, Done: done, Total: limit})
		}
	}

	existing, err := assetindex.Load(p.layout.Root)
	if err != nil && !errors.Is(err, assetindex.ErrMissingIndex) {
		return r.result, err
	}
	merged := assetindex.Merge(existing, pulled)
	if err := assetindex.Save(p.layout.Root, merged); err != nil {
		return r.result, err
	}
	r.result.IndexSize = len(merged)
	r.emit(Event{Kind: EventIndexSaved, Path: assetindex.Path(p.layout.Root), Done: len(merged) - len(existing), Total: len(merged)})
	return r.result, nil
}

func (p *Puller) fetch(ctx context.Context, r *run, session *downloadSession, record assetindex.Asset) (EventKind, string, error) {
	name := assetname.Encode(record.FileName, record.ID)
	dest := filepath.Join(p.layout.Metadata, name)
	if session.has(name) {
		return EventPresent, dest, nil
	}
	if err := r.pause(ctx); err != nil {
		return 0, dest, err
	}
	if _, err := p.files.Download(ctx, record.URL, dest); err != nil {
		if errors.Is(err, transfer.ErrExists) {
			session.add(name)
			return EventPresent, dest, nil
		}
		return 0, dest, err
	}
	session.add(name)
	return EventDownloaded, dest, nil
}
